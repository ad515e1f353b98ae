package schema

// Custom string types for type safety.
type (
	// Severity represents the normalized severity of an issue.
	Severity string

	// AnalysisType classifies what a finding is about.
	AnalysisType string

	// RiskLevel represents the qualitative band for a risk score.
	RiskLevel string

	// ToolCategory represents the adapter category a tool belongs to.
	ToolCategory string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run storage.
	DatabaseBackend string

	// BuildingShape represents the 3D shape assigned to a city building.
	BuildingShape string
)

// All severities supported, from most to least severe.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// All analysis types supported.
const (
	AnalysisQuality     AnalysisType = "quality"
	AnalysisSecurity    AnalysisType = "security"
	AnalysisPerformance AnalysisType = "performance"
	AnalysisStyle       AnalysisType = "style"
	AnalysisComplexity  AnalysisType = "complexity"
	AnalysisSemantic    AnalysisType = "semantic"
	AnalysisAIAssisted  AnalysisType = "ai-assisted"
	AnalysisAPM         AnalysisType = "apm-performance"
	AnalysisDepSecurity AnalysisType = "dependency-security"
	AnalysisDepLicense  AnalysisType = "dependency-licensing"
	AnalysisDepUsage    AnalysisType = "dependency-usage"
	AnalysisArchDesign  AnalysisType = "architecture-design"
	AnalysisArchDebt    AnalysisType = "architecture-debt"
	AnalysisBundle      AnalysisType = "bundle"
	AnalysisWebVitals   AnalysisType = "web-vitals"
)

// All risk levels supported.
const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// All adapter categories supported.
const (
	CategoryQuality      ToolCategory = "quality"
	CategorySecurity     ToolCategory = "security"
	CategoryPerformance  ToolCategory = "performance"
	CategoryAPM          ToolCategory = "apm"
	CategoryDependency   ToolCategory = "dependency"
	CategoryArchitecture ToolCategory = "architecture"
	CategoryFormal       ToolCategory = "formal"
	CategoryAI           ToolCategory = "ai"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All building shapes supported by the city payload.
const (
	ShapePyramid  BuildingShape = "pyramid"
	ShapeCylinder BuildingShape = "cylinder"
	ShapeCone     BuildingShape = "cone"
	ShapeBox      BuildingShape = "box"
)

// AllSeverities lists severities in descending order of severity.
var AllSeverities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// AllAnalysisTypes lists every analysis type in the closed enum.
var AllAnalysisTypes = []AnalysisType{
	AnalysisQuality, AnalysisSecurity, AnalysisPerformance, AnalysisStyle,
	AnalysisComplexity, AnalysisSemantic, AnalysisAIAssisted, AnalysisAPM,
	AnalysisDepSecurity, AnalysisDepLicense, AnalysisDepUsage,
	AnalysisArchDesign, AnalysisArchDebt, AnalysisBundle, AnalysisWebVitals,
}

// ValidSeverities lists all valid severities.
var ValidSeverities = map[Severity]struct{}{
	SeverityCritical: {},
	SeverityHigh:     {},
	SeverityMedium:   {},
	SeverityLow:      {},
	SeverityInfo:     {},
}

// ValidAnalysisTypes lists all valid analysis types.
var ValidAnalysisTypes = map[AnalysisType]struct{}{
	AnalysisQuality:     {},
	AnalysisSecurity:    {},
	AnalysisPerformance: {},
	AnalysisStyle:       {},
	AnalysisComplexity:  {},
	AnalysisSemantic:    {},
	AnalysisAIAssisted:  {},
	AnalysisAPM:         {},
	AnalysisDepSecurity: {},
	AnalysisDepLicense:  {},
	AnalysisDepUsage:    {},
	AnalysisArchDesign:  {},
	AnalysisArchDebt:    {},
	AnalysisBundle:      {},
	AnalysisWebVitals:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultSeverityWeights returns the default weight of each severity in
// hotspot and correlation scoring.
func DefaultSeverityWeights() map[Severity]float64 {
	return map[Severity]float64{
		SeverityCritical: 10,
		SeverityHigh:     7,
		SeverityMedium:   4,
		SeverityLow:      2,
		SeverityInfo:     1,
	}
}

// SeverityRank returns a sortable rank for a severity. Lower is more severe.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// RiskLevelForScore maps a 0-100 score to its qualitative band.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ShapeForRisk maps a risk level to the building shape used by the visualizer.
func ShapeForRisk(level RiskLevel) BuildingShape {
	switch level {
	case RiskCritical:
		return ShapePyramid
	case RiskHigh:
		return ShapeCylinder
	case RiskMedium:
		return ShapeCone
	default:
		return ShapeBox
	}
}
