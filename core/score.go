package core

import (
	"math"

	"github.com/codecity/codecity/schema"
)

// HotspotScore computes the 0-100 score for one file from its severity
// distribution and tool coverage.
//
// The formula is a fixed contract: weighted severity sum, scaled by the
// tool-diversity multiplier min(|tools|/3, 2.0), compressed with a square
// root and capped at 100. Downstream visual encoding and the risk bands in
// schema.RiskLevelForScore depend on its exact shape, so it must not drift.
func HotspotScore(weights map[schema.Severity]float64, sevDist map[schema.Severity]int, toolCount int) int {
	weighted := weightedSeveritySum(weights, sevDist)
	if weighted == 0 || toolCount == 0 {
		return 0
	}
	multiplier := math.Min(float64(toolCount)/3.0, 2.0)
	score := math.Round(math.Sqrt(weighted) * multiplier * 10)
	if score > 100 {
		return 100
	}
	return int(score)
}

// CorrelationRisk computes the risk score for a cluster of issues.
// The severity weights are shared with HotspotScore; the diversity
// multiplier saturates earlier because clusters are local.
func CorrelationRisk(weights map[schema.Severity]float64, issues []schema.UnifiedIssue) int {
	if len(issues) == 0 {
		return 0
	}
	tools := make(map[string]struct{})
	var sum float64
	for i := range issues {
		sum += severityWeight(weights, issues[i].Severity)
		tools[issues[i].ToolName] = struct{}{}
	}
	multiplier := math.Min(float64(len(tools))/2.0, 1.5)
	return int(sum * multiplier)
}

// weightedSeveritySum sums severity counts by their configured weights.
func weightedSeveritySum(weights map[schema.Severity]float64, sevDist map[schema.Severity]int) float64 {
	var sum float64
	for sev, count := range sevDist {
		sum += severityWeight(weights, sev) * float64(count)
	}
	return sum
}

// severityWeight looks up a weight, falling back to the defaults for any
// severity the override map left out.
func severityWeight(weights map[schema.Severity]float64, sev schema.Severity) float64 {
	if w, ok := weights[sev]; ok {
		return w
	}
	return schema.DefaultSeverityWeights()[sev]
}
