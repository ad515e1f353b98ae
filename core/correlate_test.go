package core

import (
	"testing"

	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCorrelateOptions() CorrelateOptions {
	return CorrelateOptions{
		LineWindow:      10,
		SeverityWeights: schema.DefaultSeverityWeights(),
	}
}

// TestCorrelateLineWindowSplit checks the cluster boundary: issues at lines
// 1, 5, 15 and 16 with a window of 10 split between 5 and 15 because a gap
// of exactly the window size starts a new cluster.
func TestCorrelateLineWindowSplit(t *testing.T) {
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 16, schema.SeverityLow, schema.AnalysisQuality, "B", "dense conditional"),
		testIssue("src/a.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "unchecked return"),
		testIssue("src/a.ts", 5, schema.SeverityMedium, schema.AnalysisQuality, "B", "magic number"),
		testIssue("src/a.ts", 15, schema.SeverityHigh, schema.AnalysisQuality, "C", "deep nesting"),
	}

	groups := Correlate(issues, defaultCorrelateOptions())
	require.Len(t, groups, 2)
	assert.Equal(t, "corr:src/a.ts:1-5", groups[0].ID)
	assert.Equal(t, 2, groups[0].MemberCount())
	assert.Equal(t, "corr:src/a.ts:15-16", groups[1].ID)
	assert.Equal(t, schema.LineRange{Start: 15, End: 16}, groups[1].LineRange)
	assert.Equal(t, []string{"B", "C"}, groups[1].ToolCoverage)
}

// TestCorrelateGapStartsNewCluster splits when a consecutive gap exceeds the
// window.
func TestCorrelateGapStartsNewCluster(t *testing.T) {
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 1, schema.SeverityHigh, schema.AnalysisQuality, "A", "unchecked return"),
		testIssue("src/a.ts", 5, schema.SeverityMedium, schema.AnalysisQuality, "B", "magic number"),
		testIssue("src/a.ts", 40, schema.SeverityHigh, schema.AnalysisQuality, "C", "deep nesting"),
		testIssue("src/a.ts", 44, schema.SeverityLow, schema.AnalysisQuality, "B", "dense conditional"),
	}

	groups := Correlate(issues, defaultCorrelateOptions())
	require.Len(t, groups, 2)
	assert.Equal(t, "corr:src/a.ts:1-5", groups[0].ID)
	assert.Equal(t, "corr:src/a.ts:40-44", groups[1].ID)
}

// TestCorrelateNeverCrossesFiles keeps adjacent lines in different files
// apart.
func TestCorrelateNeverCrossesFiles(t *testing.T) {
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 10, schema.SeverityHigh, schema.AnalysisSecurity, "A", "tainted input"),
		testIssue("src/b.ts", 11, schema.SeverityHigh, schema.AnalysisSecurity, "B", "tainted output"),
	}

	groups := Correlate(issues, defaultCorrelateOptions())
	assert.Empty(t, groups)
}

func TestCorrelateSingletonIsNoGroup(t *testing.T) {
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 10, schema.SeverityCritical, schema.AnalysisSecurity, "A", "lonely finding"),
	}
	assert.Empty(t, Correlate(issues, defaultCorrelateOptions()))
}

// TestCorrelateLinelessWholeFile clusters issues without line info into one
// whole-file group, separate from lined clusters in the same file.
func TestCorrelateLinelessWholeFile(t *testing.T) {
	a := testIssue("src/mod.ts", 0, schema.SeverityMedium, schema.AnalysisComplexity, "lizard", "module too large")
	b := testIssue("src/mod.ts", 0, schema.SeverityMedium, schema.AnalysisComplexity, "radon", "module score poor")
	c := testIssue("src/mod.ts", 3, schema.SeverityHigh, schema.AnalysisSecurity, "semgrep", "insecure import")
	d := testIssue("src/mod.ts", 5, schema.SeverityHigh, schema.AnalysisSecurity, "gosec", "insecure default")

	groups := Correlate([]schema.UnifiedIssue{a, b, c, d}, defaultCorrelateOptions())
	require.Len(t, groups, 2)
	assert.Equal(t, "corr:src/mod.ts:3-5", groups[0].ID)
	assert.Equal(t, "corr:src/mod.ts:file", groups[1].ID)
	assert.Equal(t, schema.LineRange{}, groups[1].LineRange)
}

// TestCorrelateRiskScore pins the weighted risk for a mixed cluster:
// (10 + 7 + 4) * min(3/2, 1.5) = 31.5, truncated to 31.
func TestCorrelateRiskScore(t *testing.T) {
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 5, schema.SeverityCritical, schema.AnalysisSecurity, "A", "overflow write"),
		testIssue("src/a.ts", 5, schema.SeverityHigh, schema.AnalysisQuality, "B", "missing guard"),
		testIssue("src/a.ts", 5, schema.SeverityMedium, schema.AnalysisComplexity, "C", "tangled branch"),
	}

	groups := Correlate(issues, defaultCorrelateOptions())
	require.Len(t, groups, 1)
	assert.Equal(t, 31, groups[0].RiskScore)
	assert.Equal(t,
		[]schema.AnalysisType{schema.AnalysisQuality, schema.AnalysisSecurity, schema.AnalysisComplexity},
		groups[0].AnalysisTypes)
}

// TestCorrelateEndLineExtendsRange uses a multi-line finding to stretch the
// group range past the last start line.
func TestCorrelateEndLineExtendsRange(t *testing.T) {
	a := testIssue("src/a.ts", 5, schema.SeverityHigh, schema.AnalysisQuality, "A", "oversized function")
	a.EndLine = 60
	b := testIssue("src/a.ts", 9, schema.SeverityMedium, schema.AnalysisQuality, "B", "duplicate branch")

	groups := Correlate([]schema.UnifiedIssue{a, b}, defaultCorrelateOptions())
	require.Len(t, groups, 1)
	assert.Equal(t, schema.LineRange{Start: 5, End: 60}, groups[0].LineRange)
	assert.Equal(t, "corr:src/a.ts:5-60", groups[0].ID)
}

// TestCorrelateFunctionBoundaries clusters by enclosing function when file
// contents are supplied, regardless of line distance inside the function.
func TestCorrelateFunctionBoundaries(t *testing.T) {
	contents := `function alpha() {
  const a = 1;
  const b = 2;
  return a + b;
}

function beta() {
  return 0;
}
`
	issues := []schema.UnifiedIssue{
		testIssue("src/a.ts", 2, schema.SeverityHigh, schema.AnalysisQuality, "A", "shadowed const"),
		testIssue("src/a.ts", 4, schema.SeverityMedium, schema.AnalysisQuality, "B", "implicit coercion"),
		testIssue("src/a.ts", 8, schema.SeverityHigh, schema.AnalysisQuality, "C", "constant return"),
	}

	opts := defaultCorrelateOptions()
	opts.LineWindow = 100
	opts.FileContents = map[string]string{"src/a.ts": contents}

	groups := Correlate(issues, opts)
	// Lines 2 and 4 sit in alpha, line 8 in beta: the huge window must not
	// bridge the function boundary.
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].MemberCount())
	assert.Equal(t, schema.LineRange{Start: 2, End: 4}, groups[0].LineRange)
}
