package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/codecity/codecity/core"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/parquet"
	"github.com/codecity/codecity/schema"
)

// PrintIssues outputs the unified issue list, dispatching on the configured
// output format.
func PrintIssues(result *core.UnifiedResult, cfg *contract.Config, duration time.Duration) error {
	issues := limitIssues(result.Issues, cfg.ResultLimit)

	switch cfg.Output {
	case schema.JSONOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return renderJSON(w, issues)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeIssuesCSV(w, issues, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		rows := parquet.ConvertIssues(issues)
		if err := parquet.WriteIssuesParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		return nil
	default:
		// Default to human-readable table
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeIssuesTable(issues, result, cfg, duration, w)
		}, "Wrote table")
	}
}

// limitIssues caps the slice without mutating the result.
func limitIssues(issues []schema.UnifiedIssue, limit int) []schema.UnifiedIssue {
	if limit > 0 && len(issues) > limit {
		return issues[:limit]
	}
	return issues
}

// writeIssuesTable generates and writes the human-readable table.
func writeIssuesTable(issues []schema.UnifiedIssue, result *core.UnifiedResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Path", "Line", "Severity", "Type", "Tool", "Title"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i := range issues {
		issue := &issues[i]
		line := "-"
		if issue.HasLine() {
			line = strconv.Itoa(issue.Line)
			if issue.EndLine > issue.Line {
				line = fmt.Sprintf("%d-%d", issue.Line, issue.EndLine)
			}
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(issue.CanonicalPath(), maxPathWidth),
			line,
			string(issue.Severity),
			string(issue.AnalysisType),
			issue.ToolName,
			issue.Title,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d issues across %d files\n",
		len(issues), len(result.Issues), len(result.FileMetrics)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Store backend: %s\n",
		duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeIssuesCSV writes the issue list in CSV format.
func writeIssuesCSV(w io.Writer, issues []schema.UnifiedIssue, precision int) error {
	header := []string{
		"rank",
		"id",
		"path",
		"line",
		"end_line",
		"severity",
		"analysis_type",
		"rule_id",
		"tool",
		"title",
		"confidence",
		"created_at",
	}
	return renderCSV(w, header, func(cw *csv.Writer) error {
		for i := range issues {
			issue := &issues[i]
			line, endLine := "", ""
			if issue.HasLine() {
				line = strconv.Itoa(issue.Line)
			}
			if issue.EndLine > 0 {
				endLine = strconv.Itoa(issue.EndLine)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				issue.ID,
				issue.CanonicalPath(),
				line,
				endLine,
				string(issue.Severity),
				string(issue.AnalysisType),
				issue.RuleID,
				issue.ToolName,
				issue.Title,
				formatConfidence(issue.Entity.Confidence, precision),
				issue.CreatedAt.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
