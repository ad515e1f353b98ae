package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/codecity/codecity/internal/contract"
)

// writeView resolves the destination for one rendered view, runs the render
// function against it, and announces file writes on stderr. Stdout is never
// closed.
func writeView(outputFile string, render func(io.Writer) error, successMsg string) error {
	sink, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	toFile := sink != os.Stdout
	if toFile {
		defer func() { _ = sink.Close() }()
	}

	if err := render(sink); err != nil {
		return err
	}

	if toFile {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// renderJSON encodes a view payload with two-space indentation.
func renderJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// renderCSV writes the header row, then hands the writer to the row
// producer and flushes.
func renderCSV(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// formatConfidence renders a normalization confidence at the configured
// precision.
func formatConfidence(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
