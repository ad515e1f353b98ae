package core

import (
	"sort"
	"strings"

	"github.com/codecity/codecity/schema"
)

// DedupOptions configures the deduplication pass.
type DedupOptions struct {
	// LineThreshold is the maximum line distance for two findings to be
	// considered the same defect.
	LineThreshold int

	// ToolPriority breaks ties deterministically, highest priority first.
	ToolPriority []string

	// SeverityWeights are unused by matching but kept so callers can pass
	// one options bundle through the pipeline.
	SeverityWeights map[schema.Severity]float64
}

// Deduplicate removes findings that describe the same defect reported by
// different tools or rules. Two issues match when they share a canonical
// path, their lines are within the threshold, and they either carry the same
// normalized rule id or the same analysis type with sufficiently similar
// titles. Matching is transitive: the equivalence class keeps exactly one
// representative, chosen by severity, then confidence, then tool priority.
func Deduplicate(issues []schema.UnifiedIssue, opts DedupOptions) ([]schema.UnifiedIssue, schema.DedupStats) {
	stats := schema.DedupStats{OriginalCount: len(issues)}
	if len(issues) == 0 {
		stats.DeduplicatedCount = 0
		return nil, stats
	}

	parent := make([]int, len(issues))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	// Candidate pairs only exist within a path, so partition first.
	byPath := make(map[string][]int)
	for i := range issues {
		p := issues[i].CanonicalPath()
		byPath[p] = append(byPath[p], i)
	}

	for _, idxs := range byPath {
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				if issuesMatch(&issues[idxs[a]], &issues[idxs[b]], opts.LineThreshold) {
					union(idxs[a], idxs[b])
				}
			}
		}
	}

	// Collect classes and pick a representative for each.
	classes := make(map[int][]int)
	for i := range issues {
		root := find(i)
		classes[root] = append(classes[root], i)
	}

	priority := toolPriorityIndex(opts.ToolPriority)
	keep := make(map[int]struct{}, len(classes))
	for _, members := range classes {
		if len(members) > 1 {
			stats.GroupsFound++
		}
		keep[pickRepresentative(issues, members, priority)] = struct{}{}
	}

	survivors := make([]schema.UnifiedIssue, 0, len(keep))
	for i := range issues {
		if _, ok := keep[i]; ok {
			survivors = append(survivors, issues[i])
		}
	}

	stats.DeduplicatedCount = len(survivors)
	stats.DuplicatesRemoved = stats.OriginalCount - stats.DeduplicatedCount
	return survivors, stats
}

// issuesMatch applies the pairwise matching rule. Issues with and without
// line information never match each other.
func issuesMatch(a, b *schema.UnifiedIssue, threshold int) bool {
	if a.HasLine() != b.HasLine() {
		return false
	}
	if a.HasLine() {
		dist := a.Line - b.Line
		if dist < 0 {
			dist = -dist
		}
		if dist > threshold {
			return false
		}
	}
	if ruleA, ruleB := normalizeRuleID(a.RuleID), normalizeRuleID(b.RuleID); ruleA != "" && ruleA == ruleB {
		return true
	}
	if a.AnalysisType != b.AnalysisType {
		return false
	}
	return titleSimilarity(a.Title, b.Title) >= 0.6
}

// normalizeRuleID lowercases a rule identifier and strips separators so
// "SQL-Injection" and "sql_injection" compare equal across tools.
func normalizeRuleID(rule string) string {
	rule = strings.ToLower(strings.TrimSpace(rule))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.', ' ', ':':
			return -1
		}
		return r
	}, rule)
}

// titleNoiseWords are tokens that carry no defect identity: stopwords plus
// the generic finding vocabulary tools pad their titles with.
var titleNoiseWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "of": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "is": {}, "was": {}, "with": {}, "and": {}, "or": {},
	"issue": {}, "vulnerability": {}, "warning": {}, "error": {},
	"violation": {}, "detected": {}, "found": {}, "possible": {}, "potential": {},
}

// titleTokens returns the lowercased, noise-filtered token set of a title.
func titleTokens(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		tok := sb.String()
		sb.Reset()
		if _, noisy := titleNoiseWords[tok]; !noisy {
			tokens[tok] = struct{}{}
		}
	}
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// titleSimilarity computes the Jaccard similarity of the two title token
// sets. Empty sets yield zero, so blank titles never match on similarity.
func titleSimilarity(a, b string) float64 {
	setA, setB := titleTokens(a), titleTokens(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	var inter int
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	un := len(setA) + len(setB) - inter
	return float64(inter) / float64(un)
}

// toolPriorityIndex converts the priority list into a rank lookup.
func toolPriorityIndex(priority []string) map[string]int {
	idx := make(map[string]int, len(priority))
	for i, tool := range priority {
		idx[strings.ToLower(tool)] = i
	}
	return idx
}

// pickRepresentative chooses the surviving member of an equivalence class:
// highest severity first, then highest confidence, then the configured tool
// priority, then lexical tool name, then original position for stability.
func pickRepresentative(issues []schema.UnifiedIssue, members []int, priority map[string]int) int {
	sorted := append([]int(nil), members...)
	sort.Slice(sorted, func(x, y int) bool {
		a, b := &issues[sorted[x]], &issues[sorted[y]]
		if ra, rb := schema.SeverityRank(a.Severity), schema.SeverityRank(b.Severity); ra != rb {
			return ra < rb
		}
		if a.Entity.Confidence != b.Entity.Confidence {
			return a.Entity.Confidence > b.Entity.Confidence
		}
		if pa, pb := toolRank(a.ToolName, priority), toolRank(b.ToolName, priority); pa != pb {
			return pa < pb
		}
		if a.ToolName != b.ToolName {
			return a.ToolName < b.ToolName
		}
		return sorted[x] < sorted[y]
	})
	return sorted[0]
}

// toolRank returns the priority rank of a tool; unlisted tools rank last.
func toolRank(tool string, priority map[string]int) int {
	if rank, ok := priority[strings.ToLower(tool)]; ok {
		return rank
	}
	return len(priority)
}
