package schema

// LineRange is a closed 1-based line interval.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the given line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// CorrelationGroup is a cluster of two or more issues on the same canonical
// path whose lines fall within the configured proximity window. Members are
// referenced by value; the group is rebuilt from scratch on every run.
type CorrelationGroup struct {
	ID            string         `json:"id"`
	CanonicalPath string         `json:"canonicalPath"`
	IssueIDs      []string       `json:"issueIds"`
	LineRange     LineRange      `json:"lineRange"`
	RiskScore     int            `json:"riskScore"`
	AnalysisTypes []AnalysisType `json:"analysisTypes"`
	ToolCoverage  []string       `json:"toolCoverage"`
}

// MemberCount returns the number of member issues.
func (g *CorrelationGroup) MemberCount() int {
	return len(g.IssueIDs)
}
