package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnifiedResultRequiresRoot(t *testing.T) {
	_, err := NewUnifiedResult(nil)
	assert.ErrorIs(t, err, contract.ErrConfiguration)

	cfg := testConfig()
	cfg.ProjectRoot = ""
	_, err = NewUnifiedResult(cfg)
	assert.ErrorIs(t, err, contract.ErrConfiguration)
}

// TestAddIssueMaintainsMetrics checks that the aggregation invariants hold
// after every insert: counters match contributed issues and the score is
// recomputed.
func TestAddIssueMaintainsMetrics(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)

	require.NoError(t, result.AddIssue(testIssue("src/a.ts", 5, schema.SeverityHigh, schema.AnalysisQuality, "A", "first")))
	m := result.FileMetrics["src/a.ts"]
	require.NotNil(t, m)
	assert.Equal(t, 1, m.IssueCount)
	assert.Equal(t, 9, m.HotspotScore)

	require.NoError(t, result.AddIssue(testIssue("src/a.ts", 9, schema.SeverityCritical, schema.AnalysisSecurity, "B", "second")))
	assert.Equal(t, 2, m.IssueCount)
	assert.Equal(t, map[schema.Severity]int{schema.SeverityHigh: 1, schema.SeverityCritical: 1}, m.SeverityDist)
	assert.Equal(t, map[schema.AnalysisType]int{schema.AnalysisQuality: 1, schema.AnalysisSecurity: 1}, m.AnalysisTypeDist)
	assert.Equal(t, []string{"A", "B"}, m.Tools())
	// sqrt(17) * min(2/3, 2) * 10 = 27.5 -> 27
	assert.Equal(t, 27, m.HotspotScore)
}

func TestAddIssueRejectsInvalid(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)

	bad := testIssue("src/a.ts", 5, schema.SeverityHigh, schema.AnalysisQuality, "A", "no tool")
	bad.ToolName = ""
	assert.Error(t, result.AddIssue(bad))

	bad = testIssue("", 5, schema.SeverityHigh, schema.AnalysisQuality, "A", "no path")
	assert.Error(t, result.AddIssue(bad))

	bad = testIssue("src/a.ts", 5, "urgent", schema.AnalysisQuality, "A", "bad severity")
	assert.Error(t, result.AddIssue(bad))

	bad = testIssue("src/a.ts", 0, schema.SeverityHigh, schema.AnalysisQuality, "A", "column without line")
	bad.Column = 3
	assert.Error(t, result.AddIssue(bad))

	assert.Empty(t, result.Issues)
}

func TestAddIssueFileLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFilesPerRepository = 2
	result, err := NewUnifiedResult(cfg)
	require.NoError(t, err)

	require.NoError(t, result.AddIssue(testIssue("src/a.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "a")))
	require.NoError(t, result.AddIssue(testIssue("src/b.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "b")))
	err = result.AddIssue(testIssue("src/c.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "c"))
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.True(t, result.Partial)

	// A known path still accepts issues after the file cap.
	require.NoError(t, result.AddIssue(testIssue("src/a.ts", 30, schema.SeverityLow, schema.AnalysisStyle, "B", "late style nit")))
	assert.Len(t, result.Issues, 3)
}

// TestDeduplicateIssuesRebuildsMetrics runs dedup on a result and checks the
// metrics reflect survivors only, including the dedup stats.
func TestDeduplicateIssuesRebuildsMetrics(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)

	a := testIssue("src/a.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "SQL injection in login")
	a.RuleID = "sqli"
	b := testIssue("src/a.ts", 11, schema.SeverityMedium, schema.AnalysisSecurity, "sonarqube", "SQL injection vulnerability")
	b.RuleID = "sqli"
	c := testIssue("src/b.ts", 10, schema.SeverityLow, schema.AnalysisStyle, "eslint", "missing semicolon")
	for _, issue := range []schema.UnifiedIssue{a, b, c} {
		require.NoError(t, result.AddIssue(issue))
	}
	assert.Equal(t, 2, result.FileMetrics["src/a.ts"].IssueCount)

	result.DeduplicateIssues()

	require.NotNil(t, result.DedupStats)
	assert.Equal(t, schema.DedupStats{OriginalCount: 3, DeduplicatedCount: 2, DuplicatesRemoved: 1, GroupsFound: 1}, *result.DedupStats)
	assert.Equal(t, 1, result.FileMetrics["src/a.ts"].IssueCount)
	assert.Equal(t, []string{"semgrep"}, result.FileMetrics["src/a.ts"].Tools())

	// Idempotent: a second pass removes nothing.
	result.DeduplicateIssues()
	assert.Equal(t, schema.DedupStats{OriginalCount: 2, DeduplicatedCount: 2}, *result.DedupStats)
}

func TestSummaryRollup(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)

	early := testIssue("src/a.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "older finding")
	early.CreatedAt = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	late := testIssue("src/b.ts", 2, schema.SeverityLow, schema.AnalysisStyle, "B", "newer finding")
	late.CreatedAt = time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	require.NoError(t, result.AddIssue(early))
	require.NoError(t, result.AddIssue(late))
	result.BuildCorrelationGroups()
	result.GenerateHotspots()

	s := result.Summary()
	assert.Equal(t, "/home/dev/project", s.ProjectRoot)
	assert.Equal(t, 2, s.TotalIssues)
	assert.Equal(t, 2, s.TotalFiles)
	assert.Equal(t, map[schema.Severity]int{schema.SeverityHigh: 1, schema.SeverityLow: 1}, s.SeverityTotals)
	assert.Equal(t, []string{"A", "B"}, s.ToolsCovered)
	assert.Zero(t, s.CorrelationGroups)
	assert.Zero(t, s.Hotspots)
	assert.Equal(t, late.CreatedAt, s.GeneratedAt, "timestamp comes from the newest issue")
	assert.False(t, s.Partial)
}

func TestSortedPaths(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)
	for _, p := range []string{"src/z.ts", "src/a.ts", "lib/m.ts"} {
		require.NoError(t, result.AddIssue(testIssue(p, 1, schema.SeverityLow, schema.AnalysisStyle, "A", fmt.Sprintf("nit in %s", p))))
	}
	assert.Equal(t, []string{"lib/m.ts", "src/a.ts", "src/z.ts"}, result.SortedPaths())
}
