package schema

import (
	"strings"
	"time"
)

// RunRecord is the persisted header of one analysis run. GeneratedAt stays
// zero until the run completes.
type RunRecord struct {
	RunID             int64
	ProjectRoot       string
	StartTime         time.Time
	GeneratedAt       time.Time
	TotalIssues       int
	TotalFiles        int
	CorrelationGroups int
	Hotspots          int
	DuplicatesRemoved int
	Partial           bool
	ConfigParams      *string
}

// FileMetricsRecord is the flattened per-file row persisted with each run.
// Severity counters are denormalized into columns so the table can be
// queried and exported without JSON decoding.
type FileMetricsRecord struct {
	RunID         int64
	CanonicalPath string
	IssueCount    int
	CriticalCount int
	HighCount     int
	MediumCount   int
	LowCount      int
	InfoCount     int
	ToolCount     int
	HotspotScore  int
	RiskLevel     string
	LastUpdated   time.Time
}

// HotspotRecord is the persisted form of one detected hotspot.
type HotspotRecord struct {
	RunID         int64
	HotspotID     string
	Kind          string
	CanonicalPath string
	RiskScore     int
	RiskLevel     string
	IssueCount    int
	LineStart     int
	LineEnd       int
	Actions       *string
}

// StoreStatus summarizes the run store for the status command.
type StoreStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TableSizes    map[string]int64
}

// FileMetricsRecordFor flattens one FileMetrics into its persisted row.
func FileMetricsRecordFor(runID int64, m *FileMetrics) FileMetricsRecord {
	return FileMetricsRecord{
		RunID:         runID,
		CanonicalPath: m.CanonicalPath,
		IssueCount:    m.IssueCount,
		CriticalCount: m.SeverityDist[SeverityCritical],
		HighCount:     m.SeverityDist[SeverityHigh],
		MediumCount:   m.SeverityDist[SeverityMedium],
		LowCount:      m.SeverityDist[SeverityLow],
		InfoCount:     m.SeverityDist[SeverityInfo],
		ToolCount:     len(m.ToolCoverage),
		HotspotScore:  m.HotspotScore,
		RiskLevel:     string(m.RiskLevel()),
		LastUpdated:   m.LastUpdated,
	}
}

// HotspotRecordFor flattens one Hotspot into its persisted row. Recommended
// actions are pipe-joined into a single nullable column.
func HotspotRecordFor(runID int64, h Hotspot) HotspotRecord {
	record := HotspotRecord{
		RunID:         runID,
		HotspotID:     h.ID,
		Kind:          string(h.Kind),
		CanonicalPath: h.CanonicalPath,
		RiskScore:     h.RiskScore,
		RiskLevel:     string(h.RiskLevel),
		IssueCount:    h.IssueCount,
		LineStart:     h.LineRange.Start,
		LineEnd:       h.LineRange.End,
	}
	if len(h.RecommendedActions) > 0 {
		actions := strings.Join(h.RecommendedActions, "|")
		record.Actions = &actions
	}
	return record
}
