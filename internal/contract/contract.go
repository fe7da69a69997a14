// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/keepwatch/schema"
)

// ProductSource defines the necessary operations against the Keepa product
// endpoint. This allows the core analysis logic to be tested without spending
// API tokens on a live backend.
type ProductSource interface {
	// GetProduct fetches one product with rank history, stats and buybox
	// holder history included.
	GetProduct(ctx context.Context, asin string) (*schema.Product, error)
}

// ASINResolver resolves a named saved list into its member ASINs.
type ASINResolver interface {
	ResolveList(name string) ([]string, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetProductStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing
// per-ASIN results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalASINs int) error

	// RecordRankReport stores a sales rank report for one ASIN
	RecordRankReport(analysisID int64, report schema.RankReport) error

	// RecordOwnership stores a monthly ownership record for one ASIN
	RecordOwnership(analysisID int64, rec schema.OwnershipRecord) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves every analysis run for export
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllRankReports retrieves every stored rank report for export
	GetAllRankReports() ([]schema.RankReportRecord, error)

	// GetAllOwnershipRecords retrieves every stored ownership record for export
	GetAllOwnershipRecords() ([]schema.OwnershipRow, error)

	// Close closes the underlying connection
	Close() error
}
