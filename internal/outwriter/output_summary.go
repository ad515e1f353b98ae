package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// PrintSummary outputs the run summary, dispatching on the configured
// output format.
func PrintSummary(summary schema.Summary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return renderJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summary)
		}, "Wrote CSV")
	default:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(w, summary, cfg)
		}, "Wrote summary")
	}
}

// writeSummaryText emits the human-readable summary block.
func writeSummaryText(w io.Writer, summary schema.Summary, cfg *contract.Config) error {
	lines := []string{
		header("🏙️", "Correlation Summary", cfg),
		fmt.Sprintf("Project: %s", summary.ProjectRoot),
		fmt.Sprintf("Generated: %s", summary.GeneratedAt.Format(contract.DateTimeFormat)),
		fmt.Sprintf("Issues: %d across %d files", summary.TotalIssues, summary.TotalFiles),
		fmt.Sprintf("Correlation groups: %d", summary.CorrelationGroups),
		fmt.Sprintf("Hotspots: %d", summary.Hotspots),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	// Severity breakdown in canonical order, skipping empty levels.
	for _, sev := range schema.AllSeverities {
		count := summary.SeverityTotals[sev]
		if count == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", sev, count); err != nil {
			return err
		}
	}

	if len(summary.ToolsCovered) > 0 {
		if _, err := fmt.Fprintf(w, "Tools: %s\n", strings.Join(summary.ToolsCovered, ", ")); err != nil {
			return err
		}
	}

	if summary.Dedup != nil {
		if _, err := fmt.Fprintf(w, "Deduplication: %d -> %d (%d removed in %d groups)\n",
			summary.Dedup.OriginalCount, summary.Dedup.DeduplicatedCount,
			summary.Dedup.DuplicatesRemoved, summary.Dedup.GroupsFound); err != nil {
			return err
		}
	}

	if rejected := len(summary.Validation.Rejected); rejected > 0 {
		if _, err := fmt.Fprintf(w, "Rejected findings: %d\n", rejected); err != nil {
			return err
		}
		for _, rf := range summary.Validation.Rejected {
			if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n", rf.ToolName, rf.Title, strings.Join(rf.Errors, "; ")); err != nil {
				return err
			}
		}
	}

	if summary.Partial {
		if _, err := fmt.Fprintln(w, "Warning: resource limits truncated this run; results are partial"); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryCSV writes the summary as a flat key/value CSV.
func writeSummaryCSV(w io.Writer, summary schema.Summary) error {
	header := []string{"key", "value"}
	return renderCSV(w, header, func(cw *csv.Writer) error {
		rows := [][]string{
			{"project_root", summary.ProjectRoot},
			{"generated_at", summary.GeneratedAt.Format(contract.DateTimeFormat)},
			{"total_issues", strconv.Itoa(summary.TotalIssues)},
			{"total_files", strconv.Itoa(summary.TotalFiles)},
			{"correlation_groups", strconv.Itoa(summary.CorrelationGroups)},
			{"hotspots", strconv.Itoa(summary.Hotspots)},
			{"tools", strings.Join(summary.ToolsCovered, "|")},
			{"rejected_findings", strconv.Itoa(len(summary.Validation.Rejected))},
			{"partial", strconv.FormatBool(summary.Partial)},
		}
		for _, sev := range schema.AllSeverities {
			rows = append(rows, []string{"severity_" + string(sev), strconv.Itoa(summary.SeverityTotals[sev])})
		}
		if summary.Dedup != nil {
			rows = append(rows,
				[]string{"dedup_original", strconv.Itoa(summary.Dedup.OriginalCount)},
				[]string{"dedup_remaining", strconv.Itoa(summary.Dedup.DeduplicatedCount)},
				[]string{"dedup_removed", strconv.Itoa(summary.Dedup.DuplicatesRemoved)},
			)
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
