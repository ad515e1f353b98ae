// Package parquet provides data structures and functions for exporting
// correlation results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/codecity/codecity/schema"
)

// RunRow represents a single analysis run with metadata.
// This struct maps to the codecity_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// ProjectRoot is the repository root the run analyzed
	ProjectRoot string `parquet:"project_root,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// GeneratedAt is when the run result was generated (nullable until completed)
	GeneratedAt *time.Time `parquet:"generated_at,optional,snappy"`

	// TotalIssues is the number of unified issues in this run
	TotalIssues int32 `parquet:"total_issues,snappy"`

	// TotalFiles is the number of distinct files with at least one issue
	TotalFiles int32 `parquet:"total_files,snappy"`

	// CorrelationGroups is the number of correlation groups found
	CorrelationGroups int32 `parquet:"correlation_groups,snappy"`

	// Hotspots is the number of hotspots detected
	Hotspots int32 `parquet:"hotspots,snappy"`

	// DuplicatesRemoved is the number of near-duplicate findings merged away
	DuplicatesRemoved int32 `parquet:"duplicates_removed,snappy"`

	// Partial indicates resource limits truncated the run
	Partial bool `parquet:"partial,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileMetricsRow represents the per-file rollup for a single run.
// This struct maps to the codecity_run_files database table.
type FileMetricsRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// CanonicalPath is the repo-relative path with forward slashes
	CanonicalPath string `parquet:"canonical_path,snappy"`

	// IssueCount is the number of issues on the file after deduplication
	IssueCount int32 `parquet:"issue_count,snappy"`

	// Severity counts broken out per level
	CriticalCount int32 `parquet:"critical_count,snappy"`
	HighCount     int32 `parquet:"high_count,snappy"`
	MediumCount   int32 `parquet:"medium_count,snappy"`
	LowCount      int32 `parquet:"low_count,snappy"`
	InfoCount     int32 `parquet:"info_count,snappy"`

	// ToolCount is the number of distinct tools reporting on the file
	ToolCount int32 `parquet:"tool_count,snappy"`

	// HotspotScore is the 0-100 file risk score
	HotspotScore int32 `parquet:"hotspot_score,snappy"`

	// RiskLevel is the band the score falls in
	RiskLevel string `parquet:"risk_level,snappy"`

	// LastUpdated is the newest issue timestamp on the file
	LastUpdated time.Time `parquet:"last_updated,snappy"`
}

// IssueRow represents one unified issue for columnar export.
type IssueRow struct {
	// IssueID is the deterministic content-derived identifier
	IssueID string `parquet:"issue_id,snappy"`

	// EntityID identifies the normalized code entity the issue targets
	EntityID string `parquet:"entity_id,snappy"`

	// EntityType is the entity classification (file, service, dependency, ...)
	EntityType string `parquet:"entity_type,snappy"`

	// ToolName is the reporting tool
	ToolName string `parquet:"tool_name,snappy"`

	// CanonicalPath is the repo-relative path with forward slashes
	CanonicalPath string `parquet:"canonical_path,snappy"`

	// Line is 1-based; nullable for whole-file findings
	Line *int32 `parquet:"line,optional,snappy"`

	// EndLine is nullable; set only for range findings
	EndLine *int32 `parquet:"end_line,optional,snappy"`

	// Severity is the canonical severity level
	Severity string `parquet:"severity,snappy"`

	// AnalysisType is the canonical analysis type
	AnalysisType string `parquet:"analysis_type,snappy"`

	// RuleID is the tool-specific rule identifier (nullable)
	RuleID *string `parquet:"rule_id,optional,snappy"`

	// Title is the short finding description
	Title string `parquet:"title,snappy"`

	// Confidence is the 0-1 trust weight assigned during normalization
	Confidence float64 `parquet:"confidence,snappy"`

	// CreatedAt is the normalization timestamp
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunRow struct tags
	writer := parquet.NewGenericWriter[RunRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileMetricsParquet writes a slice of FileMetricsRow structs to a Parquet file.
func WriteFileMetricsParquet(data []FileMetricsRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileMetricsRow struct tags
	writer := parquet.NewGenericWriter[FileMetricsRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteIssuesParquet writes a slice of IssueRow structs to a Parquet file.
func WriteIssuesParquet(data []IssueRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the IssueRow struct tags
	writer := parquet.NewGenericWriter[IssueRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to RunRow for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, record := range records {
		row := RunRow{
			RunID:             record.RunID,
			ProjectRoot:       record.ProjectRoot,
			StartTime:         record.StartTime,
			TotalIssues:       int32(record.TotalIssues),
			TotalFiles:        int32(record.TotalFiles),
			CorrelationGroups: int32(record.CorrelationGroups),
			Hotspots:          int32(record.Hotspots),
			DuplicatesRemoved: int32(record.DuplicatesRemoved),
			Partial:           record.Partial,
			ConfigParams:      record.ConfigParams,
		}
		if !record.GeneratedAt.IsZero() {
			generatedAt := record.GeneratedAt
			row.GeneratedAt = &generatedAt
		}
		result[i] = row
	}
	return result
}

// ConvertFileMetricsRecords converts schema.FileMetricsRecord to FileMetricsRow for Parquet export.
func ConvertFileMetricsRecords(records []schema.FileMetricsRecord) []FileMetricsRow {
	result := make([]FileMetricsRow, len(records))
	for i, record := range records {
		result[i] = FileMetricsRow{
			RunID:         record.RunID,
			CanonicalPath: record.CanonicalPath,
			IssueCount:    int32(record.IssueCount),
			CriticalCount: int32(record.CriticalCount),
			HighCount:     int32(record.HighCount),
			MediumCount:   int32(record.MediumCount),
			LowCount:      int32(record.LowCount),
			InfoCount:     int32(record.InfoCount),
			ToolCount:     int32(record.ToolCount),
			HotspotScore:  int32(record.HotspotScore),
			RiskLevel:     record.RiskLevel,
			LastUpdated:   record.LastUpdated,
		}
	}
	return result
}

// ConvertIssues converts schema.UnifiedIssue to IssueRow for Parquet export.
func ConvertIssues(issues []schema.UnifiedIssue) []IssueRow {
	result := make([]IssueRow, len(issues))
	for i := range issues {
		issue := &issues[i]
		row := IssueRow{
			IssueID:       issue.ID,
			EntityID:      issue.Entity.ID,
			EntityType:    issue.Entity.Type,
			ToolName:      issue.ToolName,
			CanonicalPath: issue.CanonicalPath(),
			Severity:      string(issue.Severity),
			AnalysisType:  string(issue.AnalysisType),
			Title:         issue.Title,
			Confidence:    issue.Entity.Confidence,
			CreatedAt:     issue.CreatedAt,
		}
		if issue.HasLine() {
			line := int32(issue.Line)
			row.Line = &line
		}
		if issue.EndLine > 0 {
			endLine := int32(issue.EndLine)
			row.EndLine = &endLine
		}
		if issue.RuleID != "" {
			ruleID := issue.RuleID
			row.RuleID = &ruleID
		}
		result[i] = row
	}
	return result
}
