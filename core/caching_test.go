package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/internal/iocache"
	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateCacheKey(t *testing.T) {
	cfg := &contract.Config{Domain: 1}

	key1 := generateCacheKey(cfg, "B0ABCD1234")
	key2 := generateCacheKey(cfg, "B0ABCD1234")
	assert.Equal(t, key1, key2, "same inputs in the same bucket share a key")
	assert.Len(t, key1, 64, "sha256 hex digest")

	key3 := generateCacheKey(cfg, "B0EFGH5678")
	assert.NotEqual(t, key1, key3, "different ASINs get different keys")

	other := &contract.Config{Domain: 3}
	key4 := generateCacheKey(other, "B0ABCD1234")
	assert.NotEqual(t, key1, key4, "different domains get different keys")
}

func TestCachedGetProductNoStore(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{Domain: 1}
	want := &schema.Product{ASIN: "B0ABCD1234"}

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(want, nil)

	// No manager at all falls through to the source.
	got, err := cachedGetProduct(ctx, cfg, source, nil, "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A manager without a product store does too.
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(nil)
	source.On("GetProduct", ctx, "B0ABCD1234").Return(want, nil)

	got, err = cachedGetProduct(ctx, cfg, source, mgr, "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCachedGetProductHit(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{Domain: 1}
	cached := schema.Product{ASIN: "B0ABCD1234", Title: "From cache"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(data, currentCacheVersion, time.Now().Unix(), nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(store)

	// The source must never be called on a hit.
	source := &contract.MockProductSource{}

	got, err := cachedGetProduct(ctx, cfg, source, mgr, "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "From cache", got.Title)

	source.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestCachedGetProductStaleEntry(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{Domain: 1}
	cached := schema.Product{ASIN: "B0ABCD1234", Title: "Stale"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	staleTS := time.Now().Add(-(maxCacheAge + time.Hour)).Unix()
	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(data, currentCacheVersion, staleTS, nil)
	store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

	fresh := &schema.Product{ASIN: "B0ABCD1234", Title: "Fresh"}
	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(fresh, nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(store)

	got, err := cachedGetProduct(ctx, cfg, source, mgr, "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Title)

	source.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCachedGetProductVersionMismatch(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{Domain: 1}
	data, err := json.Marshal(schema.Product{ASIN: "B0ABCD1234", Title: "Old version"})
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(data, currentCacheVersion+1, time.Now().Unix(), nil)
	store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

	fresh := &schema.Product{ASIN: "B0ABCD1234", Title: "Fresh"}
	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(fresh, nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(store)

	got, err := cachedGetProduct(ctx, cfg, source, mgr, "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Title)
}

func TestCachedGetProductSourceError(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{Domain: 1}

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return([]byte(nil), 0, int64(0), errors.New("miss"))

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(nil, errors.New("no product data"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(store)

	_, err := cachedGetProduct(ctx, cfg, source, mgr, "B0ABCD1234")
	assert.Error(t, err)
}
