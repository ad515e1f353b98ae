// Package adapter defines the boundary between external tool adapters and
// the correlation core. An adapter is a plain record of function references,
// not a type hierarchy: parsing turns raw tool output into findings, and the
// category validator enforces the payload contract for that adapter class.
package adapter

import (
	"fmt"

	"github.com/codecity/codecity/schema"
)

// Finding is the unified-issue-shaped record adapters hand to the core.
// Paths and severities are still tool-native at this point; the core's
// normalizer canonicalizes both.
type Finding struct {
	Path        string            `json:"path"`
	Line        int               `json:"line,omitempty"`
	Column      int               `json:"column,omitempty"`
	EndLine     int               `json:"endLine,omitempty"`
	EndColumn   int               `json:"endColumn,omitempty"`
	Severity    string            `json:"severity"`
	RuleID      string            `json:"ruleId,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	// AnalysisType optionally narrows the category default, e.g. a
	// performance tool reporting bundle findings. Must stay inside the
	// category's allowed set.
	AnalysisType schema.AnalysisType `json:"analysisType,omitempty"`

	Performance  *schema.PerformanceMetrics `json:"performanceMetrics,omitempty"`
	Dependency   *schema.DependencyInfo     `json:"dependencyInfo,omitempty"`
	Architecture *schema.ArchitectureInfo   `json:"architectureInfo,omitempty"`

	// ParseError is set when the raw record could not be decoded. Such a
	// finding carries no usable fields besides a best-effort title and is
	// rejected at ingestion instead of failing its document.
	ParseError string `json:"-"`
}

// Adapter is the capability record one tool integration provides.
type Adapter struct {
	Name     string
	Version  string
	Category schema.ToolCategory

	// Validate returns every missing or invalid field for a finding.
	// An empty slice means the finding is accepted.
	Validate func(f *Finding) []string

	// ToFindings converts raw tool output into findings.
	ToFindings func(raw []byte) ([]Finding, error)
}

// New builds an adapter for the given category, wiring in the category's
// validator. Unknown categories fail construction; there is no silent
// fallback.
func New(name, version string, category schema.ToolCategory, toFindings func([]byte) ([]Finding, error)) (Adapter, error) {
	if name == "" {
		return Adapter{}, fmt.Errorf("adapter name is required")
	}
	validate, ok := categoryValidators[category]
	if !ok {
		return Adapter{}, fmt.Errorf("unknown adapter category %q for tool %s", category, name)
	}
	return Adapter{
		Name:       name,
		Version:    version,
		Category:   category,
		Validate:   validate,
		ToFindings: toFindings,
	}, nil
}

// AnalysisTypeFor resolves the analysis type for a finding from this
// adapter. The category default applies unless the finding narrows it
// within the category's allowed set.
func (a *Adapter) AnalysisTypeFor(f *Finding) (schema.AnalysisType, error) {
	base, ok := categoryAnalysisTypes[a.Category]
	if !ok {
		return "", fmt.Errorf("unknown adapter category %q", a.Category)
	}
	if f.AnalysisType == "" {
		return base, nil
	}
	allowed := categoryAllowedTypes[a.Category]
	if _, ok := allowed[f.AnalysisType]; !ok {
		return "", fmt.Errorf("analysis type %q is not valid for category %q", f.AnalysisType, a.Category)
	}
	return f.AnalysisType, nil
}

// Confidence returns the normalization confidence constant for this
// adapter's category. Values are deterministic per category: formal
// verification ranks highest, runtime and AI-assisted findings lowest.
func (a *Adapter) Confidence() float64 {
	return categoryConfidence[a.Category]
}

// categoryAnalysisTypes assigns the default analysis type per category.
var categoryAnalysisTypes = map[schema.ToolCategory]schema.AnalysisType{
	schema.CategoryQuality:      schema.AnalysisQuality,
	schema.CategorySecurity:     schema.AnalysisSecurity,
	schema.CategoryPerformance:  schema.AnalysisPerformance,
	schema.CategoryAPM:          schema.AnalysisAPM,
	schema.CategoryDependency:   schema.AnalysisDepSecurity,
	schema.CategoryArchitecture: schema.AnalysisArchDesign,
	schema.CategoryFormal:       schema.AnalysisSemantic,
	schema.CategoryAI:           schema.AnalysisAIAssisted,
}

// categoryAllowedTypes lists the analysis types a finding may narrow to
// within each category.
var categoryAllowedTypes = map[schema.ToolCategory]map[schema.AnalysisType]struct{}{
	schema.CategoryQuality: {
		schema.AnalysisQuality:    {},
		schema.AnalysisStyle:      {},
		schema.AnalysisComplexity: {},
	},
	schema.CategorySecurity: {
		schema.AnalysisSecurity: {},
	},
	schema.CategoryPerformance: {
		schema.AnalysisPerformance: {},
		schema.AnalysisBundle:      {},
		schema.AnalysisWebVitals:   {},
	},
	schema.CategoryAPM: {
		schema.AnalysisAPM: {},
	},
	schema.CategoryDependency: {
		schema.AnalysisDepSecurity: {},
		schema.AnalysisDepLicense:  {},
		schema.AnalysisDepUsage:    {},
	},
	schema.CategoryArchitecture: {
		schema.AnalysisArchDesign: {},
		schema.AnalysisArchDebt:   {},
	},
	schema.CategoryFormal: {
		schema.AnalysisSemantic: {},
	},
	schema.CategoryAI: {
		schema.AnalysisAIAssisted: {},
	},
}

// categoryConfidence fixes the per-category normalization confidence.
var categoryConfidence = map[schema.ToolCategory]float64{
	schema.CategoryFormal:       0.95,
	schema.CategorySecurity:     0.90,
	schema.CategoryQuality:      0.85,
	schema.CategoryDependency:   0.85,
	schema.CategoryArchitecture: 0.80,
	schema.CategoryPerformance:  0.75,
	schema.CategoryAPM:          0.65,
	schema.CategoryAI:           0.60,
}
