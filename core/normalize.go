package core

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/codecity/codecity/adapter"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// NormalizeFinding converts one adapter finding into the canonical
// UnifiedIssue record. Validation failures and path rejections come back as
// *ValidationError so the caller can drop the finding and keep the run going.
func NormalizeFinding(cfg *contract.Config, ad *adapter.Adapter, f *adapter.Finding, createdAt time.Time) (schema.UnifiedIssue, error) {
	if errs := ad.Validate(f); len(errs) > 0 {
		return schema.UnifiedIssue{}, &ValidationError{ToolName: ad.Name, Title: f.Title, Errors: errs}
	}

	canonical, err := NormalizePath(cfg.ProjectRoot, f.Path)
	if err != nil {
		return schema.UnifiedIssue{}, &ValidationError{ToolName: ad.Name, Title: f.Title, Errors: []string{err.Error()}}
	}
	if canonical == "" {
		return schema.UnifiedIssue{}, &ValidationError{ToolName: ad.Name, Title: f.Title, Errors: []string{"path normalized to empty"}}
	}

	severity, err := adapter.MapSeverity(ad.Name, f.Severity)
	if err != nil {
		return schema.UnifiedIssue{}, &ValidationError{ToolName: ad.Name, Title: f.Title, Errors: []string{err.Error()}}
	}

	analysisType, err := ad.AnalysisTypeFor(f)
	if err != nil {
		return schema.UnifiedIssue{}, &ValidationError{ToolName: ad.Name, Title: f.Title, Errors: []string{err.Error()}}
	}

	issue := schema.UnifiedIssue{
		ID: issueID(ad.Name, f.RuleID, canonical, f.Line, f.Title),
		Entity: schema.Entity{
			ID:                 entityID(ad.Name, canonical),
			Type:               entityType(canonical),
			Name:               path.Base(canonical),
			CanonicalPath:      canonical,
			OriginalIdentifier: f.Path,
			ToolName:           ad.Name,
			Confidence:         ad.Confidence(),
		},
		Severity:     severity,
		AnalysisType: analysisType,
		Title:        f.Title,
		Description:  f.Description,
		RuleID:       f.RuleID,
		Line:         f.Line,
		Column:       f.Column,
		EndLine:      f.EndLine,
		EndColumn:    f.EndColumn,
		ToolName:     ad.Name,
		CreatedAt:    createdAt,
		Performance:  f.Performance,
		Dependency:   f.Dependency,
		Architecture: f.Architecture,
		Metadata:     f.Metadata,
	}
	return issue, nil
}

// entityType classifies a canonical path into the entity taxonomy.
func entityType(canonical string) string {
	switch {
	case strings.HasPrefix(canonical, "services/") || strings.HasPrefix(canonical, "hosts/"):
		return "service"
	case strings.HasPrefix(canonical, "node_modules/"):
		return "dependency"
	default:
		return "file"
	}
}

// issueID derives a deterministic id from the fields that identify a
// finding. Content hashing keeps re-runs byte-identical.
func issueID(tool, ruleID, canonical string, line int, title string) string {
	h := xxhash.Sum64String(fmt.Sprintf("%s|%s|%s|%d|%s", tool, ruleID, canonical, line, title))
	return fmt.Sprintf("issue-%016x", h)
}

// entityID derives a deterministic id for a tool's view of one path.
func entityID(tool, canonical string) string {
	h := xxhash.Sum64String(tool + "|" + canonical)
	return fmt.Sprintf("entity-%016x", h)
}

// AsValidationError unwraps an error into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
