// Package iostore persists sprints, backlog items and daily snapshots.
package iostore

import (
	"sync"

	"github.com/sprintburn/sprintburn/internal/contract"
)

// SprintStoreManager manages the SprintStore instance of the process.
type SprintStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	sprints      contract.SprintStore
}

var _ contract.StoreManager = &SprintStoreManager{} // Compile-time check

// GetSprintStore returns the SprintStore.
func (mgr *SprintStoreManager) GetSprintStore() contract.SprintStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.sprints
}
