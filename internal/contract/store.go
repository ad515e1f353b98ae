package contract

import (
	"time"

	"github.com/codecity/codecity/schema"
)

// RunStore persists analysis runs and their derived state. Implementations
// cover the SQL backends plus a no-op store for disabled persistence; the
// interface exists so command logic can be tested against a mock.
type RunStore interface {
	// BeginRun creates a run header and returns its assigned id.
	BeginRun(projectRoot string, startTime time.Time, configParams map[string]any) (int64, error)

	// CompleteRun fills in the summary-derived columns of a run.
	CompleteRun(runID int64, summary schema.Summary) error

	// RecordFileMetrics stores one file's flattened metrics row for a run.
	RecordFileMetrics(runID int64, record schema.FileMetricsRecord) error

	// RecordHotspot stores one detected hotspot row for a run.
	RecordHotspot(runID int64, record schema.HotspotRecord) error

	// ListRuns returns run headers ordered by run id, newest first.
	// A limit of 0 means no limit.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetAllFileMetrics returns every persisted file metrics row, ordered by
	// run id then path, for export.
	GetAllFileMetrics() ([]schema.FileMetricsRecord, error)

	// GetStatus reports backend, row counts and run time bounds.
	GetStatus() (schema.StoreStatus, error)

	Close() error
}

// StoreManager hands out the process-wide run store.
type StoreManager interface {
	GetRunStore() RunStore
}
