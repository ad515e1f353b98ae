package core

import (
	"fmt"
	"sort"

	"github.com/codecity/codecity/schema"
)

// CorrelateOptions configures cluster building.
type CorrelateOptions struct {
	// LineWindow is the maximum gap between consecutive issue lines inside
	// one cluster.
	LineWindow int

	// SeverityWeights feed the cluster risk score.
	SeverityWeights map[schema.Severity]float64

	// FileContents enables function-boundary clustering for the paths it
	// covers. Paths without contents use the line window.
	FileContents map[string]string
}

// Correlate groups issues into correlation clusters by path and proximity.
// A cluster only becomes a group with at least two members; a path with a
// single issue contributes nothing. The function never fails: issues without
// line information form one whole-file cluster per path.
func Correlate(issues []schema.UnifiedIssue, opts CorrelateOptions) []schema.CorrelationGroup {
	byPath := make(map[string][]schema.UnifiedIssue)
	for i := range issues {
		p := issues[i].CanonicalPath()
		byPath[p] = append(byPath[p], issues[i])
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var groups []schema.CorrelationGroup
	for _, p := range paths {
		lined, lineless := splitByLineInfo(byPath[p])

		var clusters [][]schema.UnifiedIssue
		if spans, ok := functionSpansFor(p, opts.FileContents); ok {
			clusters = clusterByFunction(lined, spans, opts.LineWindow)
		} else {
			clusters = clusterByWindow(lined, opts.LineWindow)
		}
		if len(lineless) > 0 {
			clusters = append(clusters, lineless)
		}

		for _, cluster := range clusters {
			if len(cluster) < 2 {
				continue
			}
			groups = append(groups, buildGroup(p, cluster, opts.SeverityWeights))
		}
	}
	return groups
}

// splitByLineInfo separates issues with line info (sorted by line, then id
// for determinism) from the whole-file remainder.
func splitByLineInfo(issues []schema.UnifiedIssue) (lined, lineless []schema.UnifiedIssue) {
	for i := range issues {
		if issues[i].HasLine() {
			lined = append(lined, issues[i])
		} else {
			lineless = append(lineless, issues[i])
		}
	}
	sort.Slice(lined, func(a, b int) bool {
		if lined[a].Line != lined[b].Line {
			return lined[a].Line < lined[b].Line
		}
		return lined[a].ID < lined[b].ID
	})
	sort.Slice(lineless, func(a, b int) bool { return lineless[a].ID < lineless[b].ID })
	return lined, lineless
}

// clusterByWindow greedily absorbs subsequent issues whose line is strictly
// within the window of the previous member; a gap of window lines or more
// starts a new cluster.
func clusterByWindow(sorted []schema.UnifiedIssue, window int) [][]schema.UnifiedIssue {
	var clusters [][]schema.UnifiedIssue
	var current []schema.UnifiedIssue
	for i := range sorted {
		if len(current) > 0 && sorted[i].Line-current[len(current)-1].Line >= window {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, sorted[i])
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

// buildGroup assembles a CorrelationGroup from one cluster.
func buildGroup(path string, cluster []schema.UnifiedIssue, weights map[schema.Severity]float64) schema.CorrelationGroup {
	group := schema.CorrelationGroup{
		CanonicalPath: path,
		RiskScore:     CorrelationRisk(weights, cluster),
	}

	types := make(map[schema.AnalysisType]struct{})
	tools := make(map[string]struct{})
	for i := range cluster {
		issue := &cluster[i]
		group.IssueIDs = append(group.IssueIDs, issue.ID)
		types[issue.AnalysisType] = struct{}{}
		tools[issue.ToolName] = struct{}{}
		if issue.HasLine() {
			if group.LineRange.Start == 0 || issue.Line < group.LineRange.Start {
				group.LineRange.Start = issue.Line
			}
			end := issue.Line
			if issue.EndLine > end {
				end = issue.EndLine
			}
			if end > group.LineRange.End {
				group.LineRange.End = end
			}
		}
	}
	group.AnalysisTypes = schema.SortedAnalysisTypes(types)
	group.ToolCoverage = schema.SortedTools(tools)

	if group.LineRange.Start == 0 {
		// Whole-file cluster without line information.
		group.ID = fmt.Sprintf("corr:%s:file", path)
	} else {
		group.ID = fmt.Sprintf("corr:%s:%d-%d", path, group.LineRange.Start, group.LineRange.End)
	}
	return group
}
