package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// PrintGroups outputs correlation groups, dispatching on the configured
// output format.
func PrintGroups(groups []schema.CorrelationGroup, cfg *contract.Config, duration time.Duration) error {
	if cfg.ResultLimit > 0 && len(groups) > cfg.ResultLimit {
		groups = groups[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return renderJSON(w, groups)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeGroupsCSV(w, groups)
		}, "Wrote CSV")
	default:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeGroupsTable(groups, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeGroupsTable generates and writes the human-readable table.
func writeGroupsTable(groups []schema.CorrelationGroup, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Path", "Lines", "Risk", "Members", "Types", "Tools"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i := range groups {
		g := &groups[i]
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(g.CanonicalPath, maxPathWidth),
			formatLineRange(g.LineRange),
			strconv.Itoa(g.RiskScore),
			strconv.Itoa(g.MemberCount()),
			joinAnalysisTypes(g.AnalysisTypes),
			strings.Join(g.ToolCoverage, ","),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d correlation groups (window: %d lines)\n",
		len(groups), cfg.CorrelationLineWindow); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Store backend: %s\n",
		duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeGroupsCSV writes the groups in CSV format.
func writeGroupsCSV(w io.Writer, groups []schema.CorrelationGroup) error {
	header := []string{
		"rank",
		"id",
		"path",
		"line_start",
		"line_end",
		"risk_score",
		"member_count",
		"issue_ids",
		"analysis_types",
		"tools",
	}
	return renderCSV(w, header, func(cw *csv.Writer) error {
		for i := range groups {
			g := &groups[i]
			rec := []string{
				strconv.Itoa(i + 1),
				g.ID,
				g.CanonicalPath,
				strconv.Itoa(g.LineRange.Start),
				strconv.Itoa(g.LineRange.End),
				strconv.Itoa(g.RiskScore),
				strconv.Itoa(g.MemberCount()),
				strings.Join(g.IssueIDs, "|"),
				joinAnalysisTypes(g.AnalysisTypes),
				strings.Join(g.ToolCoverage, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// joinAnalysisTypes renders the type list for a single cell.
func joinAnalysisTypes(types []schema.AnalysisType) string {
	parts := make([]string, len(types))
	for i, at := range types {
		parts[i] = string(at)
	}
	return strings.Join(parts, ",")
}
