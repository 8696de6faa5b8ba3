// Package iocache is for durable storage of KPI snapshot runs.
package iocache

import (
	"fmt"
	"sync"

	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// SnapshotStoreManager manages the configured SnapshotStore instance.
type SnapshotStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	snapshot     contract.SnapshotStore
}

var _ contract.StoreManager = &SnapshotStoreManager{} // Compile-time check

// GetSnapshotStore returns the snapshot SnapshotStore.
func (mgr *SnapshotStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}

// Global Manager instance for main logic.
var (
	Manager   = &SnapshotStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	return contract.GetSnapshotDBFilePath()
}

// InitStores initializes the global store manager.
// backend can be NoneBackend to disable snapshot recording.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewSnapshotStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
			return
		}
		Manager.snapshot = store
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.snapshot != nil {
			_ = Manager.snapshot.Close()
		}
	})
}
