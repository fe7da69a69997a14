package core

import (
	"context"
	"sync"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// productResult pairs a fetched product with the ASIN it was requested for.
type productResult struct {
	asin    string
	product *schema.Product
	err     error
}

// fetchProducts retrieves all configured ASINs through the cache using a
// worker pool. Results keep the input order, and a failed ASIN carries its
// error instead of aborting the batch.
func fetchProducts(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) []productResult {
	results := make([]productResult, len(cfg.ASINs))
	idxCh := make(chan int, len(cfg.ASINs))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for i := range idxCh {
				// Each goroutine writes to a unique index, which is safe
				asin := cfg.ASINs[i]
				product, err := cachedGetProduct(ctx, cfg, source, mgr, asin)
				results[i] = productResult{asin: asin, product: product, err: err}
			}
		})
	}

	// Send indexes to the worker channel
	for i := range cfg.ASINs {
		idxCh <- i
	}
	close(idxCh)

	// Wait for all workers to finish processing
	wg.Wait()

	return results
}
