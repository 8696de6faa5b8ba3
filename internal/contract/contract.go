// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/miradorhq/mirador/schema"
)

// SnapshotStore defines the interface for recording KPI computation runs.
// This allows the persistence layer to be mocked for testing.
type SnapshotStore interface {
	// BeginRun creates a new snapshot run and returns its unique ID.
	BeginRun(recordedAt time.Time, quarter string, params map[string]any) (int64, error)

	// RecordKPI stores one computed KPI value under a run.
	RecordKPI(runID int64, result schema.KPIResult) error

	// EndRun marks the run complete with its value count.
	EndRun(runID int64, totalValues int) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.SnapshotRun, error)

	// GetStatus returns status information about the snapshot store.
	GetStatus() (schema.SnapshotStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing configured stores.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
}
