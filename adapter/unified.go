package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/codecity/codecity/schema"
)

// NewUnifiedJSON builds an adapter that reads findings already shaped like
// the ingestion contract: a JSON array of Finding records, or an object with
// a top-level "findings" array. This is the interchange format collaborator
// adapters write when they run out of process.
func NewUnifiedJSON(toolName, version string, category schema.ToolCategory) (Adapter, error) {
	return New(toolName, version, category, parseUnifiedJSON)
}

// unifiedDocument is the enveloped form of the interchange format. Records
// stay raw so each one decodes independently.
type unifiedDocument struct {
	Findings []json.RawMessage `json:"findings"`
}

// parseUnifiedJSON accepts either a bare array or an enveloped document.
// Records decode one at a time: a type-malformed record becomes a finding
// carrying its decode error, which ingestion rejects, and never poisons the
// rest of the document.
func parseUnifiedJSON(raw []byte) ([]Finding, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		var doc unifiedDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("cannot parse unified findings document: %w", err)
		}
		records = doc.Findings
	}
	findings := make([]Finding, 0, len(records))
	for _, record := range records {
		var f Finding
		if err := json.Unmarshal(record, &f); err != nil {
			findings = append(findings, Finding{
				Title:      decodedTitle(record),
				ParseError: err.Error(),
			})
			continue
		}
		findings = append(findings, f)
	}
	return findings, nil
}

// decodedTitle salvages the title of a malformed record, if it has one, so
// the validation report can name the finding it rejected.
func decodedTitle(record json.RawMessage) string {
	var partial struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(record, &partial); err != nil {
		return ""
	}
	return partial.Title
}
