package adapter

import (
	"testing"

	"github.com/codecity/codecity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSeverityToolTables(t *testing.T) {
	tests := []struct {
		tool   string
		native string
		want   schema.Severity
	}{
		{"sonarqube", "blocker", schema.SeverityCritical},
		{"sonarqube", "critical", schema.SeverityHigh},
		{"sonarqube", "major", schema.SeverityMedium},
		{"sonarqube", "minor", schema.SeverityLow},
		{"semgrep", "ERROR", schema.SeverityHigh},
		{"semgrep", "WARNING", schema.SeverityMedium},
		{"eslint", "error", schema.SeverityMedium},
		{"eslint", "warning", schema.SeverityLow},
		{"cbmc", "failure", schema.SeverityCritical},
		{"gosec", "HIGH", schema.SeverityHigh},
		{"datadog", "warn", schema.SeverityMedium},
		{"newrelic", "critical", schema.SeverityCritical},
	}
	for _, tc := range tests {
		t.Run(tc.tool+"/"+tc.native, func(t *testing.T) {
			got, err := MapSeverity(tc.tool, tc.native)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestMapSeverityToolTableWins pins the precedence: sonarqube's "critical"
// means high even though "critical" is a valid enum value.
func TestMapSeverityToolTableWins(t *testing.T) {
	got, err := MapSeverity("SonarQube", "Critical")
	require.NoError(t, err)
	assert.Equal(t, schema.SeverityHigh, got)
}

func TestMapSeverityPassThrough(t *testing.T) {
	for _, sev := range schema.AllSeverities {
		got, err := MapSeverity("unknown-tool", string(sev))
		require.NoError(t, err)
		assert.Equal(t, sev, got)
	}
}

func TestMapSeverityDefaultTable(t *testing.T) {
	tests := []struct {
		native string
		want   schema.Severity
	}{
		{"fatal", schema.SeverityCritical},
		{"error", schema.SeverityHigh},
		{"major", schema.SeverityMedium},
		{"warn", schema.SeverityMedium},
		{"style", schema.SeverityLow},
		{"note", schema.SeverityInfo},
		{"hint", schema.SeverityInfo},
	}
	for _, tc := range tests {
		got, err := MapSeverity("unknown-tool", tc.native)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.native)
	}
}

func TestMapSeverityErrors(t *testing.T) {
	_, err := MapSeverity("unknown-tool", "")
	assert.Error(t, err)

	_, err = MapSeverity("unknown-tool", "  ")
	assert.Error(t, err)

	_, err = MapSeverity("unknown-tool", "catastrophic")
	assert.Error(t, err)
}
