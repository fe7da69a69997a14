package iocache

import (
	"sync"

	"github.com/huangsam/keepwatch/internal/contract"
)

// CacheStoreManager manages multiple CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	product      contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetProductStore returns the product response CacheStore.
func (mgr *CacheStoreManager) GetProductStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.product
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
