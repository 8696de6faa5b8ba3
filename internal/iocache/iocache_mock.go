package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSnapshotStore implements the StoreManager interface.
func (m *MockStoreManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// BeginRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) BeginRun(recordedAt time.Time, quarter string, params map[string]any) (int64, error) {
	args := m.Called(recordedAt, quarter, params)
	return args.Get(0).(int64), args.Error(1)
}

// RecordKPI implements the SnapshotStore interface.
func (m *MockSnapshotStore) RecordKPI(runID int64, result schema.KPIResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// EndRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) EndRun(runID int64, totalValues int) error {
	args := m.Called(runID, totalValues)
	return args.Error(0)
}

// ListRuns implements the SnapshotStore interface.
func (m *MockSnapshotStore) ListRuns(limit int) ([]schema.SnapshotRun, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.SnapshotRun)
	return runs, args.Error(1)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SnapshotStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
