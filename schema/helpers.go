package schema

import "sort"

// sortedKeys returns the keys of a string-keyed set in ascending order.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SortedTools is the exported form of sortedKeys for tool coverage sets.
func SortedTools(set map[string]struct{}) []string {
	return sortedKeys(set)
}

// SortedAnalysisTypes returns the members of an analysis-type set in the
// closed enum's declaration order, which keeps emitted payloads stable.
func SortedAnalysisTypes(set map[AnalysisType]struct{}) []AnalysisType {
	out := make([]AnalysisType, 0, len(set))
	for _, at := range AllAnalysisTypes {
		if _, ok := set[at]; ok {
			out = append(out, at)
		}
	}
	return out
}

// CloneSeverityDist copies a severity distribution map.
func CloneSeverityDist(src map[Severity]int) map[Severity]int {
	dst := make(map[Severity]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// CloneAnalysisTypeDist copies an analysis-type distribution map.
func CloneAnalysisTypeDist(src map[AnalysisType]int) map[AnalysisType]int {
	dst := make(map[AnalysisType]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
