// Package core has the correlation and hotspot engine: path and finding
// normalization, per-file aggregation, deduplication, correlation clustering
// and hotspot detection.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codecity/codecity/adapter"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// CorrelationCore runs one analysis. It is a per-run value: construct one,
// feed it every adapter batch through the single ingestion point, then call
// Finish. There is no global registry and no module-level mutable state.
type CorrelationCore struct {
	cfg     *contract.Config
	runTime time.Time
	result  *UnifiedResult
}

// NewCorrelationCore constructs a core for one run. The run time stamps
// every normalized issue, so fixing it makes whole runs reproducible.
func NewCorrelationCore(cfg *contract.Config, runTime time.Time) (*CorrelationCore, error) {
	result, err := NewUnifiedResult(cfg)
	if err != nil {
		return nil, err
	}
	if runTime.IsZero() {
		runTime = time.Now().UTC()
	}
	return &CorrelationCore{cfg: cfg, runTime: runTime, result: result}, nil
}

// IngestRaw parses raw adapter output and ingests the findings. Parse
// failures are run-level errors for that adapter; the result so far stays
// intact.
func (c *CorrelationCore) IngestRaw(ctx context.Context, ad *adapter.Adapter, raw []byte) error {
	if ad.ToFindings == nil {
		return fmt.Errorf("adapter %s has no parser", ad.Name)
	}
	findings, err := ad.ToFindings(raw)
	if err != nil {
		return fmt.Errorf("adapter %s: %w", ad.Name, err)
	}
	return c.Ingest(ctx, ad, findings)
}

// Ingest is the single ingestion point of the run. Findings that fail
// validation or path normalization are dropped and recorded in the
// validation report; the rest are normalized and aggregated in order.
// Hitting a resource limit stops ingestion and flags the result as partial
// without corrupting it.
func (c *CorrelationCore) Ingest(ctx context.Context, ad *adapter.Adapter, findings []adapter.Finding) error {
	for i := range findings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if findings[i].ParseError != "" {
			c.recordRejection(ad.Name, &findings[i], errors.New(findings[i].ParseError))
			continue
		}
		if c.skipFinding(&findings[i]) {
			continue
		}
		issue, err := NormalizeFinding(c.cfg, ad, &findings[i], c.runTime)
		if err != nil {
			c.recordRejection(ad.Name, &findings[i], err)
			continue
		}
		if err := c.result.AddIssue(issue); err != nil {
			if errors.Is(err, ErrResourceExhausted) {
				return err
			}
			c.recordRejection(ad.Name, &findings[i], err)
		}
	}
	return nil
}

// skipFinding applies the configured scan surface. Skipped findings are not
// validation failures; they are simply outside the run's scope.
func (c *CorrelationCore) skipFinding(f *adapter.Finding) bool {
	if f.Dependency != nil && f.Dependency.Type == "dev" && !c.cfg.IncludeDevDependencies {
		return true
	}
	canonical, err := NormalizePath(c.cfg.ProjectRoot, f.Path)
	if err != nil || canonical == "" {
		// Leave rejection accounting to the normalizer.
		return false
	}
	return !contract.MatchesScanSurface(canonical, c.cfg)
}

// recordRejection adds one dropped finding to the validation report.
func (c *CorrelationCore) recordRejection(toolName string, f *adapter.Finding, err error) {
	rejected := schema.RejectedFinding{ToolName: toolName, Title: f.Title}
	if verr, ok := AsValidationError(err); ok {
		rejected.Errors = verr.Errors
	} else {
		rejected.Errors = []string{err.Error()}
	}
	c.result.Validation.Rejected = append(c.result.Validation.Rejected, rejected)
	c.result.Validation.RejectedCount++
}

// Finish runs the derivation pipeline over everything ingested so far and
// returns the result: dedup, correlation, hotspots. The computation is pure
// and synchronous; calling Finish again recomputes the same derived state.
func (c *CorrelationCore) Finish() *UnifiedResult {
	return c.FinishWithContents(nil)
}

// FinishWithContents is Finish with file contents for function-boundary
// correlation. Contents are keyed by canonical path and only used when the
// run has function-boundary mode enabled.
func (c *CorrelationCore) FinishWithContents(contents map[string]string) *UnifiedResult {
	c.result.DeduplicateIssues()
	if c.cfg.FunctionBoundaryMode && contents != nil {
		c.result.BuildCorrelationGroupsByFunction(contents)
	} else {
		c.result.BuildCorrelationGroups()
	}
	c.result.GenerateHotspots()
	return c.result
}

// Result exposes the in-progress result, mainly for summaries of partial
// runs after ErrResourceExhausted.
func (c *CorrelationCore) Result() *UnifiedResult {
	return c.result
}
