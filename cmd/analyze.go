package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codecity/codecity/adapter"
	"github.com/codecity/codecity/core"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/outwriter"
	"github.com/codecity/codecity/internal/resultstore"
	"github.com/codecity/codecity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// parseInputSpec parses one --input value of the form
// tool:category:format:path, e.g. "semgrep:security:sarif:semgrep.sarif".
func parseInputSpec(spec string) (adapter.Report, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) != 4 {
		return adapter.Report{}, fmt.Errorf("invalid input spec %q: expected tool:category:format:path", spec)
	}
	toolName, category, format, path := parts[0], parts[1], parts[2], parts[3]

	var ad adapter.Adapter
	var err error
	switch strings.ToLower(format) {
	case "unified":
		ad, err = adapter.NewUnifiedJSON(toolName, "", schema.ToolCategory(strings.ToLower(category)))
	case "sarif":
		ad, err = adapter.NewSARIF(toolName, "", schema.ToolCategory(strings.ToLower(category)))
	default:
		return adapter.Report{}, fmt.Errorf("invalid input spec %q: unknown format %q", spec, format)
	}
	if err != nil {
		return adapter.Report{}, fmt.Errorf("invalid input spec %q: %w", spec, err)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return adapter.Report{}, fmt.Errorf("cannot read report file %s: %w", path, err)
	}
	return adapter.Report{Adapter: ad, Payload: payload}, nil
}

// loadReports resolves the report inputs for a run: an optional manifest
// file (--reports) plus any number of --input specs.
func loadReports() ([]adapter.Report, error) {
	var reports []adapter.Report

	if manifest := viper.GetString("reports"); manifest != "" {
		raw, err := os.ReadFile(manifest)
		if err != nil {
			return nil, fmt.Errorf("cannot read report manifest %s: %w", manifest, err)
		}
		reports, err = adapter.ParseReportSet(raw)
		if err != nil {
			return nil, err
		}
	}

	for _, spec := range viper.GetStringSlice("input") {
		report, err := parseInputSpec(spec)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return nil, fmt.Errorf("no report inputs provided; use --input or --reports")
	}
	return reports, nil
}

// loadSourceContents reads the source files referenced by the run so the
// function-boundary correlator can scan them. Unreadable files are skipped;
// the correlator falls back to line-window grouping for those paths.
func loadSourceContents(result *core.UnifiedResult) map[string]string {
	contents := make(map[string]string, len(result.FileMetrics))
	for path := range result.FileMetrics {
		data, err := os.ReadFile(filepath.Join(cfg.ProjectRoot, filepath.FromSlash(path)))
		if err != nil {
			continue
		}
		contents[path] = string(data)
	}
	return contents
}

// runCorrelation executes the full pipeline: load reports, ingest every
// finding, then derive dedup, correlation groups and hotspots. Hitting a
// resource limit stops ingestion and yields a partial result instead of an
// error.
func runCorrelation(ctx context.Context) (*core.UnifiedResult, time.Duration, error) {
	start := time.Now()

	reports, err := loadReports()
	if err != nil {
		return nil, 0, err
	}

	engine, err := core.NewCorrelationCore(cfg, start.UTC())
	if err != nil {
		return nil, 0, err
	}

	for i := range reports {
		if err := engine.IngestRaw(ctx, &reports[i].Adapter, reports[i].Payload); err != nil {
			if errors.Is(err, core.ErrResourceExhausted) {
				break
			}
			return nil, 0, err
		}
	}

	var result *core.UnifiedResult
	if cfg.FunctionBoundaryMode {
		result = engine.FinishWithContents(loadSourceContents(engine.Result()))
	} else {
		result = engine.Finish()
	}
	return result, time.Since(start), nil
}

// persistRun records the completed run in the configured store. The none
// backend turns every call into a no-op.
func persistRun(result *core.UnifiedResult, start time.Time) error {
	store := resultstore.Manager.GetRunStore()

	params := map[string]any{
		"dedupLineThreshold": cfg.DedupLineThreshold,
		"correlationWindow":  cfg.CorrelationLineWindow,
		"hotspotMinScore":    cfg.HotspotMinScore,
		"functionBoundaries": cfg.FunctionBoundaryMode,
		"maxIssues":          cfg.MaxIssuesPerRepository,
		"maxFiles":           cfg.MaxFilesPerRepository,
	}
	runID, err := store.BeginRun(cfg.ProjectRoot, start.UTC(), params)
	if err != nil {
		return err
	}

	for _, path := range result.SortedPaths() {
		if err := store.RecordFileMetrics(runID, schema.FileMetricsRecordFor(runID, result.FileMetrics[path])); err != nil {
			return err
		}
	}
	for _, hotspot := range result.Hotspots {
		if err := store.RecordHotspot(runID, schema.HotspotRecordFor(runID, hotspot)); err != nil {
			return err
		}
	}

	return store.CompleteRun(runID, result.Summary())
}

// analyzeCmd runs the full correlation pipeline and prints the unified
// issue list.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [project-root]",
	Short: "Correlate tool reports into a unified, deduplicated issue list.",
	Long: `Ingest findings from one or more analysis tool reports, normalize them
against the project root, and print the unified issue list.

The pipeline:
- Normalizes every path and severity into a canonical form
- Drops findings that fail adapter validation (reported, never fatal)
- Removes near-duplicate findings reported by multiple tools
- Clusters proximate findings into correlation groups
- Scores each file and cluster as a potential hotspot

Report inputs are either inline specs or a JSON manifest:
  --input tool:category:format:path   (format: unified or sarif)
  --reports manifest.json             (array of {toolName, category, format, payload})

When a store backend is configured, every analyze run is recorded for
longitudinal tracking (see 'codecity store').

Examples:
  # Correlate an ESLint export with a Semgrep SARIF report
  codecity analyze --input eslint:quality:unified:eslint.json \
    --input semgrep:security:sarif:semgrep.sarif

  # Use a manifest with embedded payloads
  codecity analyze --reports reports.json

  # Persist the run to the local SQLite store
  codecity analyze --reports reports.json --store-backend sqlite

  # Export the unified issues for analytics
  codecity analyze --reports reports.json --output parquet --output-file issues`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		result, duration, err := runCorrelation(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := persistRun(result, start); err != nil {
			contract.LogWarn("failed to record run", err)
		}
		if err := outwriter.NewOutWriter().WriteIssues(result, cfg, duration); err != nil {
			contract.LogFatal("Cannot write issues", err)
		}
	},
}
