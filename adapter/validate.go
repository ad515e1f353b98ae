package adapter

import (
	"fmt"

	"github.com/codecity/codecity/schema"
)

// categoryValidators wires each category to its payload validator.
// Every validator includes the base checks shared by all findings.
var categoryValidators = map[schema.ToolCategory]func(*Finding) []string{
	schema.CategoryQuality:      validateBase,
	schema.CategorySecurity:     validateBase,
	schema.CategoryFormal:       validateBase,
	schema.CategoryAI:           validateBase,
	schema.CategoryPerformance:  validatePerformance,
	schema.CategoryAPM:          validatePerformance,
	schema.CategoryDependency:   validateDependency,
	schema.CategoryArchitecture: validateArchitecture,
}

// validateBase runs the checks every finding must pass regardless of
// category. It returns every violation, not just the first one.
func validateBase(f *Finding) []string {
	var errs []string
	if f.Path == "" {
		errs = append(errs, "path is required")
	}
	if f.Title == "" {
		errs = append(errs, "title is required")
	}
	if f.Severity == "" {
		errs = append(errs, "severity is required")
	}
	if f.Line < 0 || f.Column < 0 {
		errs = append(errs, "line and column must be positive when present")
	}
	if f.Column > 0 && f.Line == 0 {
		errs = append(errs, "column requires a line")
	}
	if f.EndLine > 0 && f.Line > 0 && f.EndLine < f.Line {
		errs = append(errs, "endLine must not precede line")
	}
	return errs
}

// validatePerformance enforces the payload contract for performance and APM
// adapters: a performanceMetrics record with at least one metric, plus
// category and impact classification.
func validatePerformance(f *Finding) []string {
	errs := validateBase(f)
	p := f.Performance
	if p == nil {
		return append(errs, "performanceMetrics is required")
	}
	if p.PerformanceCategory == "" {
		errs = append(errs, "performanceMetrics.performanceCategory is required")
	}
	if p.ImpactLevel == "" {
		errs = append(errs, "performanceMetrics.impactLevel is required")
	}
	if !hasAnyPerformanceMetric(p) {
		errs = append(errs, "performanceMetrics must include at least one metric value")
	}
	return errs
}

// hasAnyPerformanceMetric reports whether any metric field is populated.
func hasAnyPerformanceMetric(p *schema.PerformanceMetrics) bool {
	return p.ResponseTimeMs > 0 || p.MemoryUsageBytes > 0 || p.CPUUsagePercent > 0 ||
		p.BundleSizeBytes > 0 || p.LoadTimeMs > 0 || p.Throughput > 0 ||
		p.ErrorRate > 0 || p.AvailabilityScore > 0 || len(p.CoreWebVitals) > 0
}

// validateDependency enforces the payload contract for dependency adapters.
func validateDependency(f *Finding) []string {
	errs := validateBase(f)
	d := f.Dependency
	if d == nil {
		return append(errs, "dependencyInfo is required")
	}
	if d.PackageName == "" {
		errs = append(errs, "dependencyInfo.packageName is required")
	}
	if d.Version == "" {
		errs = append(errs, "dependencyInfo.version is required")
	}
	if _, ok := schema.ValidDependencyTypes[d.Type]; !ok {
		errs = append(errs, fmt.Sprintf("dependencyInfo.type %q must be direct, transitive, dev, or peer", d.Type))
	}
	if d.Depth < 0 {
		errs = append(errs, "dependencyInfo.depth must be >= 0")
	}
	if d.Licenses == nil {
		errs = append(errs, "dependencyInfo.licenses is required")
	}
	if d.Vulnerabilities == nil {
		errs = append(errs, "dependencyInfo.vulnerabilities is required")
	}
	if d.SupplyChainRisk == "" {
		errs = append(errs, "supplyChainRisk is required")
	}
	return errs
}

// validateArchitecture enforces the payload contract for architecture
// adapters.
func validateArchitecture(f *Finding) []string {
	errs := validateBase(f)
	a := f.Architecture
	if a == nil {
		return append(errs, "architectureInfo is required")
	}
	if a.ComponentType == "" {
		errs = append(errs, "architectureInfo.componentType is required")
	}
	if len(a.ComplexityMetrics) == 0 {
		errs = append(errs, "architectureInfo.complexityMetrics is required")
	}
	if a.CouplingLevel == "" {
		errs = append(errs, "architectureInfo.couplingLevel is required")
	}
	if a.CohesionLevel == "" {
		errs = append(errs, "architectureInfo.cohesionLevel is required")
	}
	if a.ArchitectureCategory == "" {
		errs = append(errs, "architectureCategory is required")
	}
	if a.TechnicalDebtLevel == "" {
		errs = append(errs, "technicalDebtLevel is required")
	}
	return errs
}
