package core

import (
	"fmt"
	"sort"

	"github.com/codecity/codecity/schema"
)

// DetectHotspots derives file-level hotspots from the aggregated metrics
// and cluster-level hotspots from the correlation groups. The two kinds
// keep separate id spaces: a path can legitimately appear as both a file
// hotspot and inside a cluster hotspot, and neither hides the other.
// Results are sorted by descending risk score, ties broken by id.
func DetectHotspots(r *UnifiedResult, minScore int) []schema.Hotspot {
	var hotspots []schema.Hotspot
	byPath := r.issuesByPath()

	for _, path := range r.SortedPaths() {
		metrics := r.FileMetrics[path]
		if metrics.HotspotScore < minScore {
			continue
		}
		hotspots = append(hotspots, fileHotspot(metrics, byPath[path]))
	}

	issueIndex := make(map[string]*schema.UnifiedIssue, len(r.Issues))
	for i := range r.Issues {
		issueIndex[r.Issues[i].ID] = &r.Issues[i]
	}
	for i := range r.Groups {
		group := &r.Groups[i]
		if group.RiskScore < minScore {
			continue
		}
		hotspots = append(hotspots, clusterHotspot(group, issueIndex))
	}

	sort.Slice(hotspots, func(a, b int) bool {
		if hotspots[a].RiskScore != hotspots[b].RiskScore {
			return hotspots[a].RiskScore > hotspots[b].RiskScore
		}
		return hotspots[a].ID < hotspots[b].ID
	})
	return hotspots
}

// fileHotspot builds the hotspot for one path from its metrics.
func fileHotspot(metrics *schema.FileMetrics, issues []schema.UnifiedIssue) schema.Hotspot {
	h := schema.Hotspot{
		ID:               fmt.Sprintf("file:%s", metrics.CanonicalPath),
		Kind:             schema.FileHotspot,
		CanonicalPath:    metrics.CanonicalPath,
		RiskScore:        metrics.HotspotScore,
		RiskLevel:        metrics.RiskLevel(),
		IssueCount:       metrics.IssueCount,
		LineRange:        lineSpan(issues),
		SeverityDist:     schema.CloneSeverityDist(metrics.SeverityDist),
		AnalysisTypeDist: schema.CloneAnalysisTypeDist(metrics.AnalysisTypeDist),
		ToolCoverage:     metrics.Tools(),
	}
	h.RecommendedActions = recommendActions(h.SeverityDist, h.AnalysisTypeDist, len(h.ToolCoverage))
	return h
}

// clusterHotspot builds the hotspot for one correlation group.
func clusterHotspot(group *schema.CorrelationGroup, issueIndex map[string]*schema.UnifiedIssue) schema.Hotspot {
	h := schema.Hotspot{
		ID:               fmt.Sprintf("cluster:%s", group.ID),
		Kind:             schema.ClusterHotspot,
		CanonicalPath:    group.CanonicalPath,
		RiskScore:        group.RiskScore,
		RiskLevel:        schema.RiskLevelForScore(group.RiskScore),
		IssueCount:       group.MemberCount(),
		LineRange:        group.LineRange,
		SeverityDist:     make(map[schema.Severity]int),
		AnalysisTypeDist: make(map[schema.AnalysisType]int),
		ToolCoverage:     group.ToolCoverage,
	}
	for _, id := range group.IssueIDs {
		if issue, ok := issueIndex[id]; ok {
			h.SeverityDist[issue.Severity]++
			h.AnalysisTypeDist[issue.AnalysisType]++
		}
	}
	h.RecommendedActions = recommendActions(h.SeverityDist, h.AnalysisTypeDist, len(h.ToolCoverage))
	return h
}

// lineSpan computes the covering line range of a path's issues.
func lineSpan(issues []schema.UnifiedIssue) schema.LineRange {
	var span schema.LineRange
	for i := range issues {
		if !issues[i].HasLine() {
			continue
		}
		if span.Start == 0 || issues[i].Line < span.Start {
			span.Start = issues[i].Line
		}
		end := issues[i].Line
		if issues[i].EndLine > end {
			end = issues[i].EndLine
		}
		if end > span.End {
			span.End = end
		}
	}
	return span
}

// recommendActions applies the templated action rules to a hotspot's
// distributions. Rules fire independently and in a fixed order so the
// output stays deterministic.
func recommendActions(sevDist map[schema.Severity]int, typeDist map[schema.AnalysisType]int, toolCount int) []string {
	var actions []string
	if n := sevDist[schema.SeverityCritical]; n > 0 {
		actions = append(actions, fmt.Sprintf("address %d critical issues immediately", n))
	}
	if n := sevDist[schema.SeverityHigh]; n > 2 {
		actions = append(actions, fmt.Sprintf("refactor %d high-severity issues", n))
	}
	if typeDist[schema.AnalysisSecurity] > 0 || typeDist[schema.AnalysisDepSecurity] > 0 {
		actions = append(actions, "conduct security review")
	}
	if typeDist[schema.AnalysisComplexity] > 2 {
		actions = append(actions, "decompose complex functions")
	}
	if toolCount >= 4 {
		actions = append(actions, "prioritize comprehensive review")
	}
	return actions
}
