package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// UnifiedResult is the single root of ownership for one analysis run. It
// owns every issue, metric, correlation group and hotspot derived from the
// run; references between them go by canonical path or id, never by pointer.
type UnifiedResult struct {
	ProjectRoot string                         `json:"projectRoot"`
	Issues      []schema.UnifiedIssue          `json:"issues"`
	FileMetrics map[string]*schema.FileMetrics `json:"fileMetrics"`
	Groups      []schema.CorrelationGroup      `json:"correlationGroups"`
	Hotspots    []schema.Hotspot               `json:"hotspots"`
	DedupStats  *schema.DedupStats             `json:"deduplication,omitempty"`
	Validation  schema.ValidationReport        `json:"validation"`
	Partial     bool                           `json:"partial"`

	cfg *contract.Config
}

// NewUnifiedResult constructs an empty result for the configured project.
func NewUnifiedResult(cfg *contract.Config) (*UnifiedResult, error) {
	if cfg == nil || cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("%w: project root is required", contract.ErrConfiguration)
	}
	return &UnifiedResult{
		ProjectRoot: cfg.ProjectRoot,
		FileMetrics: make(map[string]*schema.FileMetrics),
		cfg:         cfg,
	}, nil
}

// AddIssue validates an issue, appends it to the issue list in insertion
// order and folds it into the per-path metrics. Aggregation invariants hold
// after every call: counters equal the number of contributing issues and the
// hotspot score is recomputed from the updated distributions.
func (r *UnifiedResult) AddIssue(issue schema.UnifiedIssue) error {
	if err := validateIssue(&issue); err != nil {
		return err
	}

	if max := r.cfg.MaxIssuesPerRepository; max > 0 && len(r.Issues) >= max {
		r.Partial = true
		return fmt.Errorf("%w: max issues per repository (%d) reached", ErrResourceExhausted, max)
	}

	path := issue.CanonicalPath()
	metrics, ok := r.FileMetrics[path]
	if !ok {
		if max := r.cfg.MaxFilesPerRepository; max > 0 && len(r.FileMetrics) >= max {
			r.Partial = true
			return fmt.Errorf("%w: max files per repository (%d) reached", ErrResourceExhausted, max)
		}
		metrics = schema.NewFileMetrics(path)
		r.FileMetrics[path] = metrics
	}

	r.Issues = append(r.Issues, issue)
	r.applyToMetrics(metrics, &issue)
	return nil
}

// validateIssue enforces the canonical-record invariants.
func validateIssue(issue *schema.UnifiedIssue) error {
	if issue.ToolName == "" {
		return fmt.Errorf("issue %s has no tool name", issue.ID)
	}
	if issue.CanonicalPath() == "" {
		return fmt.Errorf("issue %s has no canonical path", issue.ID)
	}
	if _, ok := schema.ValidSeverities[issue.Severity]; !ok {
		return fmt.Errorf("issue %s has invalid severity %q", issue.ID, issue.Severity)
	}
	if _, ok := schema.ValidAnalysisTypes[issue.AnalysisType]; !ok {
		return fmt.Errorf("issue %s has invalid analysis type %q", issue.ID, issue.AnalysisType)
	}
	if issue.Line < 0 || issue.Column < 0 {
		return fmt.Errorf("issue %s has negative position", issue.ID)
	}
	if issue.Column > 0 && issue.Line == 0 {
		return fmt.Errorf("issue %s has a column without a line", issue.ID)
	}
	return nil
}

// applyToMetrics folds one accepted issue into a path's metrics.
func (r *UnifiedResult) applyToMetrics(m *schema.FileMetrics, issue *schema.UnifiedIssue) {
	m.IssueCount++
	m.SeverityDist[issue.Severity]++
	m.AnalysisTypeDist[issue.AnalysisType]++
	m.ToolCoverage[issue.ToolName] = struct{}{}
	if issue.CreatedAt.After(m.LastUpdated) {
		m.LastUpdated = issue.CreatedAt
	}
	m.HotspotScore = HotspotScore(r.cfg.SeverityWeights, m.SeverityDist, len(m.ToolCoverage))
}

// rebuildMetrics recomputes every FileMetrics entry from the current issue
// list. Used after deduplication replaces the issue list.
func (r *UnifiedResult) rebuildMetrics() {
	r.FileMetrics = make(map[string]*schema.FileMetrics)
	for i := range r.Issues {
		issue := &r.Issues[i]
		path := issue.CanonicalPath()
		metrics, ok := r.FileMetrics[path]
		if !ok {
			metrics = schema.NewFileMetrics(path)
			r.FileMetrics[path] = metrics
		}
		r.applyToMetrics(metrics, issue)
	}
}

// DeduplicateIssues replaces the issue list with the dedup output and
// rebuilds the per-path metrics from scratch. Running it twice is a no-op.
func (r *UnifiedResult) DeduplicateIssues() {
	survivors, stats := Deduplicate(r.Issues, DedupOptions{
		LineThreshold:   r.cfg.DedupLineThreshold,
		ToolPriority:    r.cfg.ToolPriority,
		SeverityWeights: r.cfg.SeverityWeights,
	})
	r.Issues = survivors
	r.DedupStats = &stats
	r.rebuildMetrics()
}

// BuildCorrelationGroups recomputes correlation clusters from the current
// issue set. Existing groups are discarded first, so the call is idempotent.
func (r *UnifiedResult) BuildCorrelationGroups() {
	r.Groups = Correlate(r.Issues, CorrelateOptions{
		LineWindow:      r.cfg.CorrelationLineWindow,
		SeverityWeights: r.cfg.SeverityWeights,
	})
}

// BuildCorrelationGroupsByFunction recomputes clusters using enclosing
// function boundaries instead of the line window. File contents are keyed by
// canonical path; paths without contents fall back to the line window.
func (r *UnifiedResult) BuildCorrelationGroupsByFunction(contents map[string]string) {
	r.Groups = Correlate(r.Issues, CorrelateOptions{
		LineWindow:      r.cfg.CorrelationLineWindow,
		SeverityWeights: r.cfg.SeverityWeights,
		FileContents:    contents,
	})
}

// GenerateHotspots recomputes file- and cluster-level hotspots from the
// aggregated state.
func (r *UnifiedResult) GenerateHotspots() {
	r.Hotspots = DetectHotspots(r, r.cfg.HotspotMinScore)
}

// Summary computes the roll-up statistics for the run. GeneratedAt is the
// newest issue timestamp so that identical inputs produce identical output.
func (r *UnifiedResult) Summary() schema.Summary {
	s := schema.Summary{
		ProjectRoot:       r.ProjectRoot,
		TotalIssues:       len(r.Issues),
		TotalFiles:        len(r.FileMetrics),
		SeverityTotals:    make(map[schema.Severity]int),
		AnalysisTypeTotal: make(map[schema.AnalysisType]int),
		CorrelationGroups: len(r.Groups),
		Hotspots:          len(r.Hotspots),
		Dedup:             r.DedupStats,
		Validation:        r.Validation,
		Partial:           r.Partial,
	}

	tools := make(map[string]struct{})
	var newest time.Time
	for i := range r.Issues {
		issue := &r.Issues[i]
		s.SeverityTotals[issue.Severity]++
		s.AnalysisTypeTotal[issue.AnalysisType]++
		tools[issue.ToolName] = struct{}{}
		if issue.CreatedAt.After(newest) {
			newest = issue.CreatedAt
		}
	}
	s.ToolsCovered = schema.SortedTools(tools)
	s.GeneratedAt = newest
	return s
}

// SortedPaths returns the canonical paths with metrics in ascending order.
func (r *UnifiedResult) SortedPaths() []string {
	paths := make([]string, 0, len(r.FileMetrics))
	for p := range r.FileMetrics {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// issuesByPath partitions the issue list by canonical path, preserving
// insertion order inside each partition.
func (r *UnifiedResult) issuesByPath() map[string][]schema.UnifiedIssue {
	byPath := make(map[string][]schema.UnifiedIssue)
	for i := range r.Issues {
		path := r.Issues[i].CanonicalPath()
		byPath[path] = append(byPath[path], r.Issues[i])
	}
	return byPath
}
