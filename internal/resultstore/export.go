package resultstore

import (
	"errors"
	"fmt"

	"github.com/codecity/codecity/internal/parquet"
)

// ExecuteRunExport performs the actual export of run data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total file records: %d\n", status.TableSizes[runFilesTable])

	// Retrieve all run headers
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all file metrics rows
	fileMetrics, err := store.GetAllFileMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve file metrics: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetFileMetrics := parquet.ConvertFileMetricsRecords(fileMetrics)

	// Write run headers to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write file metrics to Parquet
	fileMetricsFile := outputFile + ".file_metrics.parquet"
	if err := parquet.WriteFileMetricsParquet(parquetFileMetrics, fileMetricsFile); err != nil {
		return fmt.Errorf("failed to write file metrics: %w", err)
	}
	fmt.Printf("Exported %d file metric records to: %s\n", len(parquetFileMetrics), fileMetricsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
