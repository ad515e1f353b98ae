package adapter

import (
	"fmt"
	"strings"

	"github.com/codecity/codecity/schema"
)

// toolSeverityTables maps each known tool's native severity vocabulary to
// the closed enum. Mappings are per-tool constants, not heuristics: the same
// native string always maps to the same severity for a given tool.
var toolSeverityTables = map[string]map[string]schema.Severity{
	"sonarqube": {
		"blocker":  schema.SeverityCritical,
		"critical": schema.SeverityHigh,
		"major":    schema.SeverityMedium,
		"minor":    schema.SeverityLow,
		"info":     schema.SeverityInfo,
	},
	"semgrep": {
		"error":   schema.SeverityHigh,
		"warning": schema.SeverityMedium,
		"info":    schema.SeverityLow,
	},
	"codacy": {
		"error":   schema.SeverityHigh,
		"warning": schema.SeverityMedium,
		"info":    schema.SeverityInfo,
	},
	"eslint": {
		"error":   schema.SeverityMedium,
		"warning": schema.SeverityLow,
	},
	"cbmc": {
		"failure": schema.SeverityCritical,
		"error":   schema.SeverityCritical,
		"warning": schema.SeverityMedium,
	},
	"gosec": {
		"high":   schema.SeverityHigh,
		"medium": schema.SeverityMedium,
		"low":    schema.SeverityLow,
	},
	"datadog": {
		"critical": schema.SeverityCritical,
		"error":    schema.SeverityHigh,
		"warn":     schema.SeverityMedium,
		"info":     schema.SeverityInfo,
	},
	"newrelic": {
		"critical": schema.SeverityCritical,
		"warning":  schema.SeverityMedium,
		"info":     schema.SeverityInfo,
	},
}

// defaultSeverityTable handles tools without a dedicated table.
var defaultSeverityTable = map[string]schema.Severity{
	"critical": schema.SeverityCritical,
	"blocker":  schema.SeverityCritical,
	"fatal":    schema.SeverityCritical,
	"high":     schema.SeverityHigh,
	"error":    schema.SeverityHigh,
	"major":    schema.SeverityMedium,
	"medium":   schema.SeverityMedium,
	"warning":  schema.SeverityMedium,
	"warn":     schema.SeverityMedium,
	"minor":    schema.SeverityLow,
	"low":      schema.SeverityLow,
	"style":    schema.SeverityLow,
	"note":     schema.SeverityInfo,
	"info":     schema.SeverityInfo,
	"hint":     schema.SeverityInfo,
}

// MapSeverity resolves a tool-native severity string to the closed enum.
// Already-normalized values pass through, so re-ingesting emitted data is
// stable.
func MapSeverity(toolName, native string) (schema.Severity, error) {
	key := strings.ToLower(strings.TrimSpace(native))
	if key == "" {
		return "", fmt.Errorf("empty severity from tool %s", toolName)
	}
	// The tool's own table wins over everything else.
	if table, ok := toolSeverityTables[strings.ToLower(toolName)]; ok {
		if mapped, ok := table[key]; ok {
			return mapped, nil
		}
	}
	if _, ok := schema.ValidSeverities[schema.Severity(key)]; ok {
		return schema.Severity(key), nil
	}
	if mapped, ok := defaultSeverityTable[key]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("tool %s reported unmappable severity %q", toolName, native)
}
