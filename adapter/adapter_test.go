package adapter

import (
	"testing"

	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ad, err := New("semgrep", "1.50.0", schema.CategorySecurity, nil)
	require.NoError(t, err)
	assert.Equal(t, "semgrep", ad.Name)
	assert.Equal(t, schema.CategorySecurity, ad.Category)
	assert.NotNil(t, ad.Validate)

	_, err = New("", "1.0.0", schema.CategorySecurity, nil)
	assert.Error(t, err)

	_, err = New("mystery", "1.0.0", schema.ToolCategory("telepathy"), nil)
	assert.Error(t, err)
}

func TestAnalysisTypeFor(t *testing.T) {
	tests := []struct {
		category schema.ToolCategory
		want     schema.AnalysisType
	}{
		{schema.CategoryQuality, schema.AnalysisQuality},
		{schema.CategorySecurity, schema.AnalysisSecurity},
		{schema.CategoryPerformance, schema.AnalysisPerformance},
		{schema.CategoryAPM, schema.AnalysisAPM},
		{schema.CategoryDependency, schema.AnalysisDepSecurity},
		{schema.CategoryArchitecture, schema.AnalysisArchDesign},
		{schema.CategoryFormal, schema.AnalysisSemantic},
		{schema.CategoryAI, schema.AnalysisAIAssisted},
	}
	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			ad, err := New("t", "1", tc.category, nil)
			require.NoError(t, err)
			got, err := ad.AnalysisTypeFor(&Finding{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalysisTypeNarrowing(t *testing.T) {
	quality, err := New("eslint", "9", schema.CategoryQuality, nil)
	require.NoError(t, err)

	got, err := quality.AnalysisTypeFor(&Finding{AnalysisType: schema.AnalysisStyle})
	require.NoError(t, err)
	assert.Equal(t, schema.AnalysisStyle, got)

	got, err = quality.AnalysisTypeFor(&Finding{AnalysisType: schema.AnalysisComplexity})
	require.NoError(t, err)
	assert.Equal(t, schema.AnalysisComplexity, got)

	// A quality tool cannot claim security findings.
	_, err = quality.AnalysisTypeFor(&Finding{AnalysisType: schema.AnalysisSecurity})
	assert.Error(t, err)

	perf, err := New("lighthouse", "12", schema.CategoryPerformance, nil)
	require.NoError(t, err)
	got, err = perf.AnalysisTypeFor(&Finding{AnalysisType: schema.AnalysisWebVitals})
	require.NoError(t, err)
	assert.Equal(t, schema.AnalysisWebVitals, got)

	dep, err := New("npm-audit", "10", schema.CategoryDependency, nil)
	require.NoError(t, err)
	got, err = dep.AnalysisTypeFor(&Finding{AnalysisType: schema.AnalysisDepLicense})
	require.NoError(t, err)
	assert.Equal(t, schema.AnalysisDepLicense, got)
}

func TestConfidenceLadder(t *testing.T) {
	ladder := []schema.ToolCategory{
		schema.CategoryFormal,
		schema.CategorySecurity,
		schema.CategoryQuality,
		schema.CategoryArchitecture,
		schema.CategoryPerformance,
		schema.CategoryAPM,
		schema.CategoryAI,
	}
	var prev float64 = 1.0
	for _, category := range ladder {
		ad, err := New("t", "1", category, nil)
		require.NoError(t, err)
		c := ad.Confidence()
		assert.Greater(t, c, 0.0)
		assert.LessOrEqual(t, c, prev, "confidence must not increase down the ladder at %s", category)
		prev = c
	}

	formal, _ := New("cbmc", "6", schema.CategoryFormal, nil)
	assert.InDelta(t, 0.95, formal.Confidence(), 1e-9)
	ai, _ := New("copilot-review", "1", schema.CategoryAI, nil)
	assert.InDelta(t, 0.60, ai.Confidence(), 1e-9)
}
