package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// maxCacheAge bounds how long a cached product response stays usable.
// Keepa refreshes product histories continuously, so anything older than a
// day is not worth reusing.
const maxCacheAge = 24 * time.Hour

// cachedGetProduct fetches a product through the cache when one is configured.
func cachedGetProduct(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager, asin string) (*schema.Product, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetProductStore()
	}
	if store == nil {
		// Fallback to direct fetching
		return source.GetProduct(ctx, asin)
	}

	key := generateCacheKey(cfg, asin)

	// Check for cache hit
	if product := checkCacheHit(store, key); product != nil {
		return product, nil
	}

	// Cache miss: fetch and store
	return fetchAndStore(ctx, source, store, key, asin)
}

// checkCacheHit attempts to retrieve and validate a cached product
func checkCacheHit(store contract.CacheStore, key string) *schema.Product {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= maxCacheAge {
			var product schema.Product
			if err := json.Unmarshal(data, &product); err == nil {
				return &product // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// fetchAndStore fetches the product and stores it in cache
func fetchAndStore(ctx context.Context, source contract.ProductSource, store contract.CacheStore, key, asin string) (*schema.Product, error) {
	product, err := source.GetProduct(ctx, asin)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(product); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return product, nil
}

// generateCacheKey creates a unique key based on the lookup parameters
func generateCacheKey(cfg *contract.Config, asin string) string {
	// Align to the cache granularity so lookups within the same bucket reuse
	// the stored response instead of spending API tokens
	bucket := time.Now().Truncate(contract.CacheGranularity)

	key := fmt.Sprintf("%s:%d:%d",
		asin,
		cfg.Domain,
		bucket.Unix(),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
