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

// PrintHotspots outputs detected hotspots, dispatching on the configured
// output format.
func PrintHotspots(hotspots []schema.Hotspot, cfg *contract.Config, duration time.Duration) error {
	if cfg.ResultLimit > 0 && len(hotspots) > cfg.ResultLimit {
		hotspots = hotspots[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return renderJSON(w, hotspots)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsCSV(w, hotspots)
		}, "Wrote CSV")
	default:
		return writeView(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsTable(hotspots, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeHotspotsTable generates and writes the human-readable table.
func writeHotspotsTable(hotspots []schema.Hotspot, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Kind", "Path", "Lines", "Score", "Label", "Issues", "Tools"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i := range hotspots {
		h := &hotspots[i]
		data = append(data, []string{
			strconv.Itoa(i + 1),
			string(h.Kind),
			contract.TruncatePath(h.CanonicalPath, maxPathWidth),
			formatLineRange(h.LineRange),
			strconv.Itoa(h.RiskScore),
			riskLabel(h.RiskLevel, cfg),
			strconv.Itoa(h.IssueCount),
			strconv.Itoa(len(h.ToolCoverage)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d hotspots (threshold: %d)\n",
		len(hotspots), cfg.HotspotMinScore); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Store backend: %s\n",
		duration, cfg.StoreBackend); err != nil {
		return err
	}

	// Recommended actions below the table, top hotspot first.
	for i := range hotspots {
		h := &hotspots[i]
		if len(h.RecommendedActions) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", header("🔥", h.ID, cfg)); err != nil {
			return err
		}
		for _, action := range h.RecommendedActions {
			if _, err := fmt.Fprintf(writer, "  - %s\n", action); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeHotspotsCSV writes the hotspots in CSV format.
func writeHotspotsCSV(w io.Writer, hotspots []schema.Hotspot) error {
	header := []string{
		"rank",
		"id",
		"kind",
		"path",
		"line_start",
		"line_end",
		"risk_score",
		"risk_level",
		"issue_count",
		"tools",
		"actions",
	}
	return renderCSV(w, header, func(cw *csv.Writer) error {
		for i := range hotspots {
			h := &hotspots[i]
			rec := []string{
				strconv.Itoa(i + 1),
				h.ID,
				string(h.Kind),
				h.CanonicalPath,
				strconv.Itoa(h.LineRange.Start),
				strconv.Itoa(h.LineRange.End),
				strconv.Itoa(h.RiskScore),
				string(h.RiskLevel),
				strconv.Itoa(h.IssueCount),
				strings.Join(h.ToolCoverage, "|"),
				strings.Join(h.RecommendedActions, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatLineRange renders a closed line interval for table cells.
func formatLineRange(r schema.LineRange) string {
	if r.Start <= 0 {
		return "-"
	}
	if r.End > r.Start {
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
	return strconv.Itoa(r.Start)
}
