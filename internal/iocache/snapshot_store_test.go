package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miradorhq/mirador/schema"
)

func TestSnapshotStore_NoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), "Q1 2025", map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.RecordKPI(1, schema.KPIResult{Kind: schema.KPICompletionRate})
	assert.NoError(t, err)

	err = store.EndRun(1, 6)
	assert.NoError(t, err)

	runs, err := store.ListRuns(0)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)

	err = store.Close()
	assert.NoError(t, err)
}

func TestSnapshotStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginRun
	recordedAt := time.Now()
	params := map[string]any{
		"projects": "OLAP_Proyectos.csv",
		"quality":  "OLAP_Calidad.csv",
	}
	runID, err := store.BeginRun(recordedAt, "Q1 2025", params)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test RecordKPI
	results := []schema.KPIResult{
		{
			Kind:   schema.KPICompletionRate,
			Value:  50.0,
			Unit:   "%",
			Status: schema.StatusWarning,
			Meta:   map[string]any{"completed": 1, "total": 2},
		},
		{
			Kind:   schema.KPIDefectDensity,
			Value:  3.3,
			Unit:   "defects/project",
			Status: schema.StatusHealthy,
		},
	}
	for _, r := range results {
		require.NoError(t, store.RecordKPI(runID, r))
	}

	// Test EndRun
	require.NoError(t, store.EndRun(runID, len(results)))

	// Test ListRuns
	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "Q1 2025", runs[0].Quarter)
	assert.WithinDuration(t, recordedAt, runs[0].RecordedAt, time.Second)

	// Values come back ordered by kind
	require.Len(t, runs[0].Values, 2)
	assert.Equal(t, schema.KPICompletionRate, runs[0].Values[0].Kind)
	assert.Equal(t, 50.0, runs[0].Values[0].Value)
	assert.Equal(t, schema.StatusWarning, runs[0].Values[0].Status)
	assert.Equal(t, schema.KPIDefectDensity, runs[0].Values[1].Kind)

	// Meta round-trips through JSON
	require.NotNil(t, runs[0].Values[0].Meta)
	assert.EqualValues(t, 2, runs[0].Values[0].Meta["total"])

	// Test GetStatus
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, dbPath, status.Location)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, int64(2), status.TotalValues)
	assert.False(t, status.LastRunAt.IsZero())
	assert.Greater(t, status.SizeBytes, int64(0))
}

func TestSnapshotStore_ListRunsLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Now()
	for i := 0; i < 3; i++ {
		// Distinct timestamps keep the generated run IDs unique
		_, err := store.BeginRun(base.Add(time.Duration(i)*time.Millisecond), "Q1 2025", nil)
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first
	assert.Greater(t, runs[0].ID, runs[1].ID)

	all, err := store.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSnapshotStore_UnsupportedBackend(t *testing.T) {
	_, err := NewSnapshotStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
