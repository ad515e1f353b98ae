package schema

// HotspotKind distinguishes file-level from cluster-level hotspots.
// The two kinds use separate id spaces and are never merged, even when a
// cluster hotspot covers the same path as a file hotspot.
type HotspotKind string

// All hotspot kinds supported.
const (
	FileHotspot    HotspotKind = "file"
	ClusterHotspot HotspotKind = "cluster"
)

// Hotspot is a canonical path or correlation group whose risk score cleared
// the configured threshold. It is derived purely from FileMetrics or from a
// CorrelationGroup and regenerated from current aggregated state.
type Hotspot struct {
	ID                 string               `json:"id"`
	Kind               HotspotKind          `json:"kind"`
	CanonicalPath      string               `json:"canonicalPath"`
	RiskScore          int                  `json:"riskScore"`
	RiskLevel          RiskLevel            `json:"riskLevel"`
	IssueCount         int                  `json:"issueCount"`
	LineRange          LineRange            `json:"lineRange"`
	SeverityDist       map[Severity]int     `json:"severityDistribution"`
	AnalysisTypeDist   map[AnalysisType]int `json:"analysisTypeDistribution"`
	ToolCoverage       []string             `json:"toolCoverage"`
	RecommendedActions []string             `json:"recommendedActions"`
}
