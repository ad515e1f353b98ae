package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/codecity/codecity/schema"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// NewSARIF builds an adapter that reads SARIF 2.1.0 reports. SARIF is
// tool-agnostic, so the caller names the producing tool and its category;
// SARIF levels map through the standard error/warning/note ladder.
func NewSARIF(toolName, version string, category schema.ToolCategory) (Adapter, error) {
	return New(toolName, version, category, parseSARIF)
}

// parseSARIF converts raw SARIF JSON into findings. Results without a
// physical location are skipped: they have no subject to correlate on.
func parseSARIF(raw []byte) ([]Finding, error) {
	var report sarif.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("cannot parse SARIF report: %w", err)
	}

	var findings []Finding
	for _, run := range report.Runs {
		if run == nil {
			continue
		}
		for _, res := range run.Results {
			if res == nil {
				continue
			}
			f := Finding{
				Severity: sarifLevel(res.Level),
				Metadata: map[string]string{"source": "sarif"},
			}
			if res.RuleID != nil {
				f.RuleID = *res.RuleID
			}
			if res.Message.Text != nil {
				f.Title = *res.Message.Text
			}
			if loc := firstLocation(res); loc != nil {
				if loc.PhysicalLocation.ArtifactLocation != nil && loc.PhysicalLocation.ArtifactLocation.URI != nil {
					f.Path = *loc.PhysicalLocation.ArtifactLocation.URI
				}
				if region := loc.PhysicalLocation.Region; region != nil {
					f.Line = intOrZero(region.StartLine)
					f.Column = intOrZero(region.StartColumn)
					f.EndLine = intOrZero(region.EndLine)
					f.EndColumn = intOrZero(region.EndColumn)
				}
			}
			if f.Path == "" {
				continue
			}
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// firstLocation returns the first usable physical location of a result.
func firstLocation(res *sarif.Result) *sarif.Location {
	for _, loc := range res.Locations {
		if loc != nil && loc.PhysicalLocation != nil {
			return loc
		}
	}
	return nil
}

// sarifLevel maps a SARIF level to a native severity string the severity
// tables understand. SARIF defaults to "warning" when the level is absent.
func sarifLevel(level *string) string {
	if level == nil || *level == "" {
		return "warning"
	}
	return *level
}

// intOrZero dereferences an optional SARIF integer.
func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
