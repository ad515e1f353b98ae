package core

import (
	"testing"

	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDedupOptions() DedupOptions {
	return DedupOptions{
		LineThreshold:   3,
		ToolPriority:    []string{"cbmc", "sonarqube", "semgrep", "codacy", "eslint"},
		SeverityWeights: schema.DefaultSeverityWeights(),
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	survivors, stats := Deduplicate(nil, defaultDedupOptions())
	assert.Empty(t, survivors)
	assert.Equal(t, schema.DedupStats{}, stats)
}

// TestDeduplicateSameRuleNearbyLines merges two findings with the same
// normalized rule id within the line threshold.
func TestDeduplicateSameRuleNearbyLines(t *testing.T) {
	a := testIssue("src/auth.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "SQL injection in query builder")
	a.RuleID = "sql-injection"
	b := testIssue("src/auth.ts", 12, schema.SeverityMedium, schema.AnalysisSecurity, "sonarqube", "query concatenation")
	b.RuleID = "SQL_Injection"

	survivors, stats := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	require.Len(t, survivors, 1)
	assert.Equal(t, "semgrep", survivors[0].ToolName, "higher severity wins")
	assert.Equal(t, schema.DedupStats{OriginalCount: 2, DeduplicatedCount: 1, DuplicatesRemoved: 1, GroupsFound: 1}, stats)
}

// TestDeduplicateTitleSimilarity merges findings without rule ids when the
// analysis type matches and the noise-filtered titles overlap enough.
func TestDeduplicateTitleSimilarity(t *testing.T) {
	a := testIssue("src/db.ts", 42, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "SQL injection vulnerability")
	b := testIssue("src/db.ts", 44, schema.SeverityHigh, schema.AnalysisSecurity, "sonarqube", "Possible SQL injection detected")

	survivors, stats := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	require.Len(t, survivors, 1)
	assert.Equal(t, 1, stats.GroupsFound)
}

// TestDeduplicateDifferentAnalysisType keeps findings apart when neither rule
// ids nor analysis types agree, even with identical titles.
func TestDeduplicateDifferentAnalysisType(t *testing.T) {
	a := testIssue("src/db.ts", 42, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "tainted input reaches sink")
	b := testIssue("src/db.ts", 42, schema.SeverityHigh, schema.AnalysisQuality, "eslint", "tainted input reaches sink")

	survivors, _ := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	assert.Len(t, survivors, 2)
}

func TestDeduplicateBeyondLineThreshold(t *testing.T) {
	a := testIssue("src/db.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "hardcoded secret")
	a.RuleID = "secret"
	b := testIssue("src/db.ts", 14, schema.SeverityHigh, schema.AnalysisSecurity, "sonarqube", "hardcoded secret")
	b.RuleID = "secret"

	survivors, _ := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	assert.Len(t, survivors, 2, "distance 4 exceeds threshold 3")
}

func TestDeduplicateDifferentPaths(t *testing.T) {
	a := testIssue("src/a.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "hardcoded secret")
	a.RuleID = "secret"
	b := testIssue("src/b.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "hardcoded secret")
	b.RuleID = "secret"

	survivors, _ := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	assert.Len(t, survivors, 2)
}

// TestDeduplicateLinelessMismatch never matches a lined finding against a
// whole-file finding.
func TestDeduplicateLinelessMismatch(t *testing.T) {
	a := testIssue("src/a.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "weak crypto usage")
	b := testIssue("src/a.ts", 0, schema.SeverityHigh, schema.AnalysisSecurity, "sonarqube", "weak crypto usage")

	survivors, _ := Deduplicate([]schema.UnifiedIssue{a, b}, defaultDedupOptions())
	assert.Len(t, survivors, 2)
}

// TestDeduplicateTransitiveChain collapses a chain where the endpoints only
// match through the middle finding.
func TestDeduplicateTransitiveChain(t *testing.T) {
	a := testIssue("src/a.ts", 10, schema.SeverityMedium, schema.AnalysisSecurity, "eslint", "unsafe eval call")
	a.RuleID = "unsafe-eval"
	b := testIssue("src/a.ts", 12, schema.SeverityMedium, schema.AnalysisSecurity, "semgrep", "unsafe eval call")
	b.RuleID = "unsafe-eval"
	c := testIssue("src/a.ts", 15, schema.SeverityHigh, schema.AnalysisSecurity, "sonarqube", "unsafe eval call")
	c.RuleID = "unsafe-eval"

	// a-b distance 2, b-c distance 3, a-c distance 5: transitive closure
	// still yields one class.
	survivors, stats := Deduplicate([]schema.UnifiedIssue{a, b, c}, defaultDedupOptions())
	require.Len(t, survivors, 1)
	assert.Equal(t, schema.SeverityHigh, survivors[0].Severity)
	assert.Equal(t, 1, stats.GroupsFound)
	assert.Equal(t, 2, stats.DuplicatesRemoved)
}

// TestRepresentativeTieBreaks walks the tie-break ladder one rung at a time.
func TestRepresentativeTieBreaks(t *testing.T) {
	base := func(tool string, sev schema.Severity, conf float64) schema.UnifiedIssue {
		iss := testIssue("src/a.ts", 10, sev, schema.AnalysisSecurity, tool, "insecure deserialization")
		iss.RuleID = "deser"
		iss.Entity.Confidence = conf
		return iss
	}

	t.Run("severity wins", func(t *testing.T) {
		survivors, _ := Deduplicate([]schema.UnifiedIssue{
			base("eslint", schema.SeverityCritical, 0.5),
			base("cbmc", schema.SeverityHigh, 0.95),
		}, defaultDedupOptions())
		require.Len(t, survivors, 1)
		assert.Equal(t, "eslint", survivors[0].ToolName)
	})

	t.Run("confidence breaks severity tie", func(t *testing.T) {
		survivors, _ := Deduplicate([]schema.UnifiedIssue{
			base("eslint", schema.SeverityHigh, 0.95),
			base("cbmc", schema.SeverityHigh, 0.5),
		}, defaultDedupOptions())
		require.Len(t, survivors, 1)
		assert.Equal(t, "eslint", survivors[0].ToolName)
	})

	t.Run("tool priority breaks confidence tie", func(t *testing.T) {
		survivors, _ := Deduplicate([]schema.UnifiedIssue{
			base("eslint", schema.SeverityHigh, 0.9),
			base("semgrep", schema.SeverityHigh, 0.9),
		}, defaultDedupOptions())
		require.Len(t, survivors, 1)
		assert.Equal(t, "semgrep", survivors[0].ToolName)
	})

	t.Run("lexical tool name breaks unlisted tie", func(t *testing.T) {
		survivors, _ := Deduplicate([]schema.UnifiedIssue{
			base("zeta-scan", schema.SeverityHigh, 0.9),
			base("alpha-scan", schema.SeverityHigh, 0.9),
		}, defaultDedupOptions())
		require.Len(t, survivors, 1)
		assert.Equal(t, "alpha-scan", survivors[0].ToolName)
	})
}

func TestNormalizeRuleID(t *testing.T) {
	assert.Equal(t, "sqlinjection", normalizeRuleID("SQL-Injection"))
	assert.Equal(t, "sqlinjection", normalizeRuleID("sql_injection"))
	assert.Equal(t, "sqlinjection", normalizeRuleID(" sql.injection "))
	assert.Equal(t, "", normalizeRuleID(""))
}

func TestTitleSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, titleSimilarity("SQL injection", "sql INJECTION"), 1e-9)
	assert.InDelta(t, 2.0/3.0, titleSimilarity(
		"SQL injection vulnerability",
		"Possible SQL injection detected in query"), 1e-9)
	assert.Zero(t, titleSimilarity("", "anything"))
	assert.Zero(t, titleSimilarity("the a an", "something"))
}
