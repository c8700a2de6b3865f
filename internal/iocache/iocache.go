// Package iocache persists computed reports so repeated runs over unchanged records skip the engine.
package iocache

import (
	"sync"

	"github.com/huangsam/slotpulse/internal/contract"
)

// CacheStoreManager owns the stores used for result caching.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	result       contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResultStore returns the report CacheStore, or nil when caching was never initialized.
func (mgr *CacheStoreManager) GetResultStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.result
}
