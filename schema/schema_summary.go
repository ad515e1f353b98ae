package schema

import "time"

// DedupStats reports what the deduplication pass did to the issue list.
type DedupStats struct {
	OriginalCount     int `json:"originalCount"`
	DeduplicatedCount int `json:"deduplicatedCount"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	GroupsFound       int `json:"groupsFound"`
}

// RejectedFinding records one finding that failed adapter validation and was
// dropped from the pipeline.
type RejectedFinding struct {
	ToolName string   `json:"toolName"`
	Title    string   `json:"title,omitempty"`
	Errors   []string `json:"errors"`
}

// ValidationReport aggregates per-run validation failures. Per-finding
// problems never abort a run; they are counted here instead.
type ValidationReport struct {
	RejectedCount int               `json:"rejectedCount"`
	Rejected      []RejectedFinding `json:"rejected,omitempty"`
}

// Summary holds the roll-up statistics for one analysis run.
type Summary struct {
	ProjectRoot       string               `json:"projectRoot"`
	TotalIssues       int                  `json:"totalIssues"`
	TotalFiles        int                  `json:"totalFiles"`
	SeverityTotals    map[Severity]int     `json:"severityTotals"`
	AnalysisTypeTotal map[AnalysisType]int `json:"analysisTypeTotals"`
	ToolsCovered      []string             `json:"toolsCovered"`
	CorrelationGroups int                  `json:"correlationGroups"`
	Hotspots          int                  `json:"hotspots"`
	Dedup             *DedupStats          `json:"deduplication,omitempty"`
	Validation        ValidationReport     `json:"validation"`
	Partial           bool                 `json:"partial"` // true when max* limits truncated the run
	GeneratedAt       time.Time            `json:"generatedAt"`
}
