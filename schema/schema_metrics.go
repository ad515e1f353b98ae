package schema

import (
	"encoding/json"
	"time"
)

// FileMetrics accumulates per-file counters across every accepted issue.
// Counters are always the sum of contributing issues; HotspotScore is a pure
// function of the other fields and is recomputed on every AddIssue call by
// the aggregator. FileMetrics never owns the issues themselves.
type FileMetrics struct {
	CanonicalPath    string               `json:"canonicalPath"`
	IssueCount       int                  `json:"issueCount"`
	SeverityDist     map[Severity]int     `json:"severityDistribution"`
	AnalysisTypeDist map[AnalysisType]int `json:"analysisTypeDistribution"`
	ToolCoverage     map[string]struct{}  `json:"-"`
	HotspotScore     int                  `json:"hotspotScore"` // 0-100
	LastUpdated      time.Time            `json:"lastUpdated"`
}

// NewFileMetrics returns empty metrics for a canonical path.
func NewFileMetrics(path string) *FileMetrics {
	return &FileMetrics{
		CanonicalPath:    path,
		SeverityDist:     make(map[Severity]int),
		AnalysisTypeDist: make(map[AnalysisType]int),
		ToolCoverage:     make(map[string]struct{}),
	}
}

// Tools returns the tool coverage as a sorted slice.
func (m *FileMetrics) Tools() []string {
	return sortedKeys(m.ToolCoverage)
}

// fileMetricsJSON is the emitted shape of FileMetrics: tool coverage becomes
// a sorted slice, since the set form has no stable JSON rendering.
type fileMetricsJSON struct {
	CanonicalPath    string               `json:"canonicalPath"`
	IssueCount       int                  `json:"issueCount"`
	SeverityDist     map[Severity]int     `json:"severityDistribution"`
	AnalysisTypeDist map[AnalysisType]int `json:"analysisTypeDistribution"`
	ToolCoverage     []string             `json:"toolCoverage"`
	HotspotScore     int                  `json:"hotspotScore"`
	LastUpdated      time.Time            `json:"lastUpdated"`
}

// MarshalJSON emits the tool coverage set as a sorted slice.
func (m *FileMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileMetricsJSON{
		CanonicalPath:    m.CanonicalPath,
		IssueCount:       m.IssueCount,
		SeverityDist:     m.SeverityDist,
		AnalysisTypeDist: m.AnalysisTypeDist,
		ToolCoverage:     m.Tools(),
		HotspotScore:     m.HotspotScore,
		LastUpdated:      m.LastUpdated,
	})
}

// RiskLevel returns the qualitative band for the current hotspot score.
func (m *FileMetrics) RiskLevel() RiskLevel {
	return RiskLevelForScore(m.HotspotScore)
}
