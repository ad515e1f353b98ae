package resultstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(projectRoot string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(projectRoot, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// CompleteRun implements the RunStore interface.
func (m *MockRunStore) CompleteRun(runID int64, summary schema.Summary) error {
	args := m.Called(runID, summary)
	return args.Error(0)
}

// RecordFileMetrics implements the RunStore interface.
func (m *MockRunStore) RecordFileMetrics(runID int64, record schema.FileMetricsRecord) error {
	args := m.Called(runID, record)
	return args.Error(0)
}

// RecordHotspot implements the RunStore interface.
func (m *MockRunStore) RecordHotspot(runID int64, record schema.HotspotRecord) error {
	args := m.Called(runID, record)
	return args.Error(0)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllFileMetrics implements the RunStore interface.
func (m *MockRunStore) GetAllFileMetrics() ([]schema.FileMetricsRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.FileMetricsRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
