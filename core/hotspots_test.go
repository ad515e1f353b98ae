package core

import (
	"fmt"
	"testing"

	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hotspotFixture seeds a result with 3 critical + 2 high findings on one
// path, spread across the given tools round-robin.
func hotspotFixture(t *testing.T, tools ...string) *UnifiedResult {
	t.Helper()
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)
	severities := []schema.Severity{
		schema.SeverityCritical, schema.SeverityCritical, schema.SeverityCritical,
		schema.SeverityHigh, schema.SeverityHigh,
	}
	for i, sev := range severities {
		tool := tools[i%len(tools)]
		issue := testIssue("src/core.ts", 100+i*30, sev, schema.AnalysisSecurity, tool,
			fmt.Sprintf("distinct defect %d", i))
		require.NoError(t, result.AddIssue(issue))
	}
	return result
}

// TestFileHotspotThreshold replays the threshold scenario: two tools score
// 44 and stay below the default minimum, a third tool pushes the same file
// to 66 and produces a hotspot.
func TestFileHotspotThreshold(t *testing.T) {
	below := hotspotFixture(t, "A", "B")
	assert.Equal(t, 44, below.FileMetrics["src/core.ts"].HotspotScore)
	assert.Empty(t, DetectHotspots(below, 50))

	above := hotspotFixture(t, "A", "B", "C")
	assert.Equal(t, 66, above.FileMetrics["src/core.ts"].HotspotScore)
	hotspots := DetectHotspots(above, 50)
	require.Len(t, hotspots, 1)

	h := hotspots[0]
	assert.Equal(t, "file:src/core.ts", h.ID)
	assert.Equal(t, schema.FileHotspot, h.Kind)
	assert.Equal(t, 66, h.RiskScore)
	assert.Equal(t, schema.RiskHigh, h.RiskLevel)
	assert.Equal(t, 5, h.IssueCount)
	assert.Equal(t, []string{"A", "B", "C"}, h.ToolCoverage)
	assert.Equal(t, schema.LineRange{Start: 100, End: 220}, h.LineRange)
}

// TestClusterHotspot promotes a correlation group above the threshold into
// its own hotspot alongside the file hotspot.
func TestClusterHotspot(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		issue := testIssue("src/core.ts", 10+i, schema.SeverityCritical, schema.AnalysisSecurity, fmt.Sprintf("tool-%d", i),
			fmt.Sprintf("distinct critical defect %d", i))
		require.NoError(t, result.AddIssue(issue))
	}
	result.BuildCorrelationGroups()
	require.Len(t, result.Groups, 1)
	// 6 x 10 x min(6/2, 1.5) = 90.
	assert.Equal(t, 90, result.Groups[0].RiskScore)

	hotspots := DetectHotspots(result, 50)
	require.Len(t, hotspots, 2)
	// The file score saturates at 100 and outranks the cluster's 90.
	assert.Equal(t, schema.FileHotspot, hotspots[0].Kind)
	assert.Equal(t, 100, hotspots[0].RiskScore)
	assert.Equal(t, schema.ClusterHotspot, hotspots[1].Kind)
	assert.Equal(t, "cluster:corr:src/core.ts:10-15", hotspots[1].ID)
	assert.Equal(t, schema.RiskCritical, hotspots[1].RiskLevel)
	assert.Equal(t, 6, hotspots[1].SeverityDist[schema.SeverityCritical])
}

func TestHotspotOrdering(t *testing.T) {
	result, err := NewUnifiedResult(testConfig())
	require.NoError(t, err)
	// Two files, both over threshold with identical composition: the tie
	// breaks on id.
	for _, path := range []string{"src/b.ts", "src/a.ts"} {
		for i := 0; i < 4; i++ {
			issue := testIssue(path, 10+i*40, schema.SeverityCritical, schema.AnalysisQuality, fmt.Sprintf("tool-%d", i),
				fmt.Sprintf("distinct defect %d", i))
			require.NoError(t, result.AddIssue(issue))
		}
	}

	hotspots := DetectHotspots(result, 50)
	require.Len(t, hotspots, 2)
	assert.Equal(t, hotspots[0].RiskScore, hotspots[1].RiskScore)
	assert.Equal(t, "file:src/a.ts", hotspots[0].ID)
	assert.Equal(t, "file:src/b.ts", hotspots[1].ID)
}

func TestRecommendActions(t *testing.T) {
	t.Run("critical and security", func(t *testing.T) {
		actions := recommendActions(
			map[schema.Severity]int{schema.SeverityCritical: 2},
			map[schema.AnalysisType]int{schema.AnalysisSecurity: 1},
			2)
		assert.Equal(t, []string{
			"address 2 critical issues immediately",
			"conduct security review",
		}, actions)
	})

	t.Run("high volume and complexity", func(t *testing.T) {
		actions := recommendActions(
			map[schema.Severity]int{schema.SeverityHigh: 3},
			map[schema.AnalysisType]int{schema.AnalysisComplexity: 3},
			4)
		assert.Equal(t, []string{
			"refactor 3 high-severity issues",
			"decompose complex functions",
			"prioritize comprehensive review",
		}, actions)
	})

	t.Run("quiet hotspot has no actions", func(t *testing.T) {
		actions := recommendActions(
			map[schema.Severity]int{schema.SeverityMedium: 2},
			map[schema.AnalysisType]int{schema.AnalysisStyle: 2},
			1)
		assert.Empty(t, actions)
	})

	t.Run("dependency security triggers review", func(t *testing.T) {
		actions := recommendActions(
			map[schema.Severity]int{schema.SeverityHigh: 1},
			map[schema.AnalysisType]int{schema.AnalysisDepSecurity: 1},
			1)
		assert.Equal(t, []string{"conduct security review"}, actions)
	})
}
