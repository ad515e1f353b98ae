package adapter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codecity/codecity/schema"
)

// Report pairs a constructed adapter with the raw payload it should parse.
type Report struct {
	Adapter Adapter
	Payload json.RawMessage
}

// reportEnvelope is the manifest entry shape. Payload may be a unified
// findings document or a full SARIF report, depending on format.
type reportEnvelope struct {
	ToolName    string          `json:"toolName"`
	ToolVersion string          `json:"toolVersion,omitempty"`
	Category    string          `json:"category"`
	Format      string          `json:"format,omitempty"` // unified (default) or sarif
	Payload     json.RawMessage `json:"payload"`
}

// ParseReportSet reads a report manifest: a JSON array of tool reports,
// each naming its tool, category, payload format, and the payload itself.
// Every entry must construct a valid adapter; a bad entry fails the whole
// manifest so a run never silently drops a tool.
func ParseReportSet(raw []byte) ([]Report, error) {
	var envelopes []reportEnvelope
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		return nil, fmt.Errorf("invalid report manifest: %w", err)
	}

	reports := make([]Report, 0, len(envelopes))
	for i, env := range envelopes {
		if env.ToolName == "" {
			return nil, fmt.Errorf("report %d: toolName is required", i)
		}
		if len(env.Payload) == 0 {
			return nil, fmt.Errorf("report %d (%s): payload is required", i, env.ToolName)
		}

		category := schema.ToolCategory(strings.ToLower(env.Category))
		var ad Adapter
		var err error
		switch strings.ToLower(env.Format) {
		case "", "unified":
			ad, err = NewUnifiedJSON(env.ToolName, env.ToolVersion, category)
		case "sarif":
			ad, err = NewSARIF(env.ToolName, env.ToolVersion, category)
		default:
			return nil, fmt.Errorf("report %d (%s): unknown format %q", i, env.ToolName, env.Format)
		}
		if err != nil {
			return nil, fmt.Errorf("report %d: %w", i, err)
		}

		reports = append(reports, Report{Adapter: ad, Payload: env.Payload})
	}
	return reports, nil
}
