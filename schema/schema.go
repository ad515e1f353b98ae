// Package schema has configs, models and constants for all parts of codecity.
package schema

import "time"

// Entity identifies the subject of a finding after normalization.
// It keeps the original tool identifier next to the canonical path so the
// mapping can always be audited.
type Entity struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"` // file, rule-violation, service, dependency, ...
	Name               string  `json:"name"`
	CanonicalPath      string  `json:"canonicalPath"`
	OriginalIdentifier string  `json:"originalIdentifier"`
	ToolName           string  `json:"toolName"`
	Confidence         float64 `json:"confidence"` // normalization certainty in [0,1]
}

// UnifiedIssue is the canonical finding record that every adapter output is
// normalized into. It is immutable once created; downstream stages reference
// it by ID or canonical path, never by mutating it.
type UnifiedIssue struct {
	ID           string       `json:"id"`
	Entity       Entity       `json:"entity"`
	Severity     Severity     `json:"severity"`
	AnalysisType AnalysisType `json:"analysisType"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	RuleID       string       `json:"ruleId,omitempty"`
	Line         int          `json:"line,omitempty"`   // 1-based; 0 means no line info
	Column       int          `json:"column,omitempty"` // 1-based; 0 means no column info
	EndLine      int          `json:"endLine,omitempty"`
	EndColumn    int          `json:"endColumn,omitempty"`
	ToolName     string       `json:"toolName"`
	CreatedAt    time.Time    `json:"createdAt"`

	// Category-specific payloads. Exactly the one matching the adapter
	// category is set; the rest stay nil.
	Performance  *PerformanceMetrics `json:"performanceMetrics,omitempty"`
	Dependency   *DependencyInfo     `json:"dependencyInfo,omitempty"`
	Architecture *ArchitectureInfo   `json:"architectureInfo,omitempty"`

	// Metadata preserves tool-native fields that have no canonical slot.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HasLine reports whether the issue carries line information.
func (i *UnifiedIssue) HasLine() bool {
	return i.Line > 0
}

// CanonicalPath is a convenience accessor for the entity's canonical path.
func (i *UnifiedIssue) CanonicalPath() string {
	return i.Entity.CanonicalPath
}

// PerformanceMetrics carries the extra payload required on performance and
// APM findings. All fields are optional but at least one must be set.
type PerformanceMetrics struct {
	ResponseTimeMs    float64            `json:"responseTime,omitempty"`
	MemoryUsageBytes  int64              `json:"memoryUsage,omitempty"`
	CPUUsagePercent   float64            `json:"cpuUsage,omitempty"`
	BundleSizeBytes   int64              `json:"bundleSize,omitempty"`
	LoadTimeMs        float64            `json:"loadTime,omitempty"`
	Throughput        float64            `json:"throughput,omitempty"`
	ErrorRate         float64            `json:"errorRate,omitempty"`
	AvailabilityScore float64            `json:"availabilityScore,omitempty"`
	CoreWebVitals     map[string]float64 `json:"coreWebVitals,omitempty"`

	PerformanceCategory string `json:"performanceCategory"`
	ImpactLevel         string `json:"impactLevel"`
}

// DependencyVulnerability describes one known vulnerability on a dependency.
type DependencyVulnerability struct {
	ID       string   `json:"id"` // CVE or advisory identifier
	Severity Severity `json:"severity"`
	Title    string   `json:"title,omitempty"`
	FixedIn  string   `json:"fixedIn,omitempty"`
}

// DependencyInfo carries the extra payload required on dependency findings.
type DependencyInfo struct {
	PackageName     string                    `json:"packageName"`
	Version         string                    `json:"version"`
	Type            string                    `json:"type"` // direct, transitive, dev, peer
	Depth           int                       `json:"depth"`
	Licenses        []string                  `json:"licenses"`
	Vulnerabilities []DependencyVulnerability `json:"vulnerabilities"`
	UsageAnalysis   string                    `json:"usageAnalysis,omitempty"`

	SupplyChainRisk       string `json:"supplyChainRisk"`
	RemediationSuggestion string `json:"remediationSuggestion,omitempty"`
}

// ValidDependencyTypes lists the allowed dependency relationship types.
var ValidDependencyTypes = map[string]struct{}{
	"direct":     {},
	"transitive": {},
	"dev":        {},
	"peer":       {},
}

// ArchitectureInfo carries the extra payload required on architecture findings.
type ArchitectureInfo struct {
	ComponentType        string             `json:"componentType"`
	ComplexityMetrics    map[string]float64 `json:"complexityMetrics"`
	CouplingLevel        string             `json:"couplingLevel"`
	CohesionLevel        string             `json:"cohesionLevel"`
	MaintainabilityIndex float64            `json:"maintainabilityIndex,omitempty"`
	TechnicalDebtMinutes int                `json:"technicalDebtMinutes,omitempty"`
	CircularDependencies []string           `json:"circularDependencies,omitempty"`

	ArchitectureCategory string `json:"architectureCategory"`
	TechnicalDebtLevel   string `json:"technicalDebtLevel"`
}
