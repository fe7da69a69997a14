package core

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/internal/iocache"
	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// liveProduct builds a product whose rank and buybox histories land in the
// recent analysis window, so the default cfg.Days filter keeps them.
func liveProduct(asin string) *schema.Product {
	now := time.Now().UTC()
	var raw []int
	for i := 5; i >= 1; i-- {
		at := now.Add(-time.Duration(i) * 24 * time.Hour)
		raw = append(raw, schema.KeepaMinutesFromTime(at), 1000+i)
	}

	holderAt := schema.KeepaMinutesFromTime(now.Add(-48 * time.Hour))
	return &schema.Product{
		ASIN:         asin,
		Title:        "Product " + asin,
		CategoryTree: []schema.Category{{CatID: 1000, Name: "Electronics"}},
		SalesRanks:   map[string][]int{"1000": raw},
		BuyBoxSellerIDHistory: []string{
			strconv.Itoa(holderAt), schema.AmazonSellerID,
		},
	}
}

func testConfig(asins ...string) *contract.Config {
	// Anchor the period on the buybox holder observation made by liveProduct,
	// so the test does not wobble around month boundaries.
	ref := time.Now().UTC().Add(-48 * time.Hour)
	return &contract.Config{
		ASINs:       asins,
		Days:        30,
		Year:        ref.Year(),
		Months:      []int{int(ref.Month())},
		Seller:      schema.AmazonSellerID,
		MinShare:    50.0,
		ResultLimit: 10,
		Workers:     2,
	}
}

func TestRunSalesRank(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234", "B0EFGH5678")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)
	source.On("GetProduct", ctx, "B0EFGH5678").Return(liveProduct("B0EFGH5678"), nil)

	reports, err := runSalesRank(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Input order is preserved across the worker pool.
	assert.Equal(t, "B0ABCD1234", reports[0].ASIN)
	assert.Equal(t, "B0EFGH5678", reports[1].ASIN)
	assert.Equal(t, "Electronics", reports[0].CategoryName)
	assert.Equal(t, 5, reports[0].Stats.Count)

	source.AssertExpectations(t)
}

func TestRunSalesRankSkipsFailedASINs(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234", "B0EFGH5678")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(nil, errors.New("no product data"))
	source.On("GetProduct", ctx, "B0EFGH5678").Return(liveProduct("B0EFGH5678"), nil)

	reports, err := runSalesRank(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "B0EFGH5678", reports[0].ASIN)

	source.AssertExpectations(t)
}

func TestRunSalesRankAllFailed(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(nil, errors.New("boom"))

	_, err := runSalesRank(ctx, cfg, source, nil)
	assert.Error(t, err)

	source.AssertExpectations(t)
}

func TestRunSalesRankRecordsAnalysis(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)

	analysisStore := &iocache.MockAnalysisStore{}
	analysisStore.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(7), nil)
	analysisStore.On("RecordRankReport", int64(7), mock.Anything).Return(nil)
	analysisStore.On("EndAnalysis", int64(7), mock.Anything, 1).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProductStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(analysisStore)

	reports, err := runSalesRank(ctx, cfg, source, mgr)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	source.AssertExpectations(t)
	analysisStore.AssertExpectations(t)
}

func TestRunBuybox(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)

	reports, err := runBuybox(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Records, 1)

	rec := reports[0].Records[0]
	assert.Equal(t, "B0ABCD1234", rec.ASIN)
	assert.Equal(t, schema.AmazonSellerID, rec.SellerID)
	require.NotNil(t, rec.DayShare)
	assert.InDelta(t, 100.0, *rec.DayShare, 1e-9)

	source.AssertExpectations(t)
}

func TestRunOwner(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)

	reports, err := runOwner(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, schema.AmazonSellerID, reports[0].SellerID)
	assert.Equal(t, "Amazon", reports[0].OwnerType)

	source.AssertExpectations(t)
}

func TestRunHistory(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")
	cfg.HistoryKind = schema.BuyboxHistory

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)

	results, err := runHistory(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, schema.BuyboxHistory, results[0].Kind)
	assert.Len(t, results[0].Owners, 1)

	source.AssertExpectations(t)
}

func TestRunCheck(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("B0ABCD1234")
	cfg.MinShare = 100.0

	source := &contract.MockProductSource{}
	source.On("GetProduct", ctx, "B0ABCD1234").Return(liveProduct("B0ABCD1234"), nil)

	results, err := runCheck(ctx, cfg, source, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed, "100%% day share meets a 100%% threshold")

	source.AssertExpectations(t)
}

func TestFetchProductsPreservesOrder(t *testing.T) {
	ctx := context.Background()
	asins := []string{"B000000001", "B000000002", "B000000003", "B000000004"}
	cfg := testConfig(asins...)

	source := &contract.MockProductSource{}
	for _, asin := range asins {
		source.On("GetProduct", ctx, asin).Return(liveProduct(asin), nil)
	}

	results := fetchProducts(ctx, cfg, source, nil)
	require.Len(t, results, len(asins))
	for i, asin := range asins {
		assert.Equal(t, asin, results[i].asin)
		require.NoError(t, results[i].err)
		assert.Equal(t, asin, results[i].product.ASIN)
	}

	source.AssertExpectations(t)
}
