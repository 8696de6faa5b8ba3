package schema

import "time"

// SnapshotStatus reports the state of the KPI snapshot store.
type SnapshotStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Location    string          `json:"location"`
	TotalRuns   int64           `json:"total_runs"`
	TotalValues int64           `json:"total_values"`
	LastRunAt   time.Time       `json:"last_run_at"`
	SizeBytes   int64           `json:"size_bytes,omitempty"`
}

// SnapshotRun is one recorded KPI computation with its stored values.
type SnapshotRun struct {
	ID         int64       `json:"id"`
	RecordedAt time.Time   `json:"recorded_at"`
	Quarter    string      `json:"quarter"`
	Values     []KPIResult `json:"values"`
}
