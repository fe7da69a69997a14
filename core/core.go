// Package core has core logic for normalizing, selecting and aggregating
// Keepa product history, plus the command entry points built on top of it.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/internal/keepaclient"
	"github.com/huangsam/keepwatch/internal/outwriter"
	"github.com/huangsam/keepwatch/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteSalesRank runs the sales rank analysis and prints results to stdout.
// It serves as the main entry point for the 'salesrank' command.
func ExecuteSalesRank(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	logBatchHeader(cfg, "Sales rank")

	reports, duration, err := GetSalesRankResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSalesRank(reports, cfg, duration)
}

// GetSalesRankResults runs the sales rank analysis and returns the reports.
// This is the headless variant used by MCP tool handlers.
func GetSalesRankResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.RankReport, time.Duration, error) {
	start := time.Now()
	source := keepaclient.New(cfg.APIKey, cfg.Domain)
	reports, err := runSalesRank(ctx, cfg, source, mgr)
	return reports, time.Since(start), err
}

// runSalesRank fetches all products and builds one rank report per ASIN.
func runSalesRank(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) ([]schema.RankReport, error) {
	analysisID, analysisStore := beginTracking(cfg, mgr, "salesrank")

	reports := make([]schema.RankReport, 0, len(cfg.ASINs))
	for _, res := range fetchProducts(ctx, cfg, source, mgr) {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), res.err)
			continue
		}
		report, err := buildRankReport(res.product, cfg, time.Now().UTC())
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), err)
			continue
		}
		reports = append(reports, *report)

		if analysisStore != nil && analysisID > 0 {
			if err := analysisStore.RecordRankReport(analysisID, *report); err != nil {
				contract.LogWarn("Failed to record rank report", err)
			}
		}
	}

	endTracking(analysisStore, analysisID, len(reports))

	if len(reports) == 0 {
		return nil, errors.New("no usable rank data for any ASIN")
	}
	return reports, nil
}

// ExecuteBuybox runs the monthly buybox ownership analysis and prints results
// to stdout. It serves as the main entry point for the 'buybox' command.
func ExecuteBuybox(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	logBatchHeader(cfg, "Buybox share")
	logPeriodHeader(cfg)

	reports, duration, err := GetBuyboxResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBuybox(reports, cfg, duration)
}

// GetBuyboxResults runs the buybox ownership analysis and returns the reports.
// This is the headless variant used by MCP tool handlers.
func GetBuyboxResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.BuyboxReport, time.Duration, error) {
	start := time.Now()
	source := keepaclient.New(cfg.APIKey, cfg.Domain)
	reports, err := runBuybox(ctx, cfg, source, mgr)
	return reports, time.Since(start), err
}

// runBuybox fetches all products and builds one buybox report per ASIN.
func runBuybox(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) ([]schema.BuyboxReport, error) {
	analysisID, analysisStore := beginTracking(cfg, mgr, "buybox")

	reports := make([]schema.BuyboxReport, 0, len(cfg.ASINs))
	for _, res := range fetchProducts(ctx, cfg, source, mgr) {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), res.err)
			continue
		}
		report, err := buildBuyboxReport(res.product, cfg)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), err)
			continue
		}
		reports = append(reports, *report)

		if analysisStore != nil && analysisID > 0 {
			for _, rec := range report.Records {
				if err := analysisStore.RecordOwnership(analysisID, rec); err != nil {
					contract.LogWarn("Failed to record ownership", err)
				}
			}
		}
	}

	endTracking(analysisStore, analysisID, len(reports))

	if len(reports) == 0 {
		return nil, errors.New("no usable buybox data for any ASIN")
	}
	return reports, nil
}

// ExecuteOwner reports the current buybox holder for each ASIN.
// It serves as the main entry point for the 'owner' command.
func ExecuteOwner(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	logBatchHeader(cfg, "Current owner")

	reports, duration, err := GetOwnerResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteOwner(reports, cfg, duration)
}

// GetOwnerResults reports the current buybox holder for each ASIN and returns
// the reports. This is the headless variant used by MCP tool handlers.
func GetOwnerResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.OwnerReport, time.Duration, error) {
	start := time.Now()
	source := keepaclient.New(cfg.APIKey, cfg.Domain)
	reports, err := runOwner(ctx, cfg, source, mgr)
	return reports, time.Since(start), err
}

// runOwner fetches all products and reads the newest buybox holder of each.
func runOwner(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) ([]schema.OwnerReport, error) {
	reports := make([]schema.OwnerReport, 0, len(cfg.ASINs))
	for _, res := range fetchProducts(ctx, cfg, source, mgr) {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), res.err)
			continue
		}
		report, err := buildOwnerReport(res.product)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), err)
			continue
		}
		reports = append(reports, *report)
	}

	if len(reports) == 0 {
		return nil, errors.New("no usable owner data for any ASIN")
	}
	return reports, nil
}

// ExecuteHistory dumps the normalized history of each ASIN.
// It serves as the main entry point for the 'history' command.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	logBatchHeader(cfg, "History dump")
	source := keepaclient.New(cfg.APIKey, cfg.Domain)

	results, err := runHistory(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteHistory(results, cfg, duration)
}

// runHistory fetches all products and normalizes the configured history kind.
func runHistory(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) ([]schema.HistoryResult, error) {
	results := make([]schema.HistoryResult, 0, len(cfg.ASINs))
	for _, res := range fetchProducts(ctx, cfg, source, mgr) {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), res.err)
			continue
		}
		result, err := buildHistoryResult(res.product, cfg)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), err)
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, errors.New("no usable history for any ASIN")
	}
	return results, nil
}

// ExecuteCheck gates the configured seller's buybox day share for CI-style
// automation. It prints all gate results and exits non-zero when any fail.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	logBatchHeader(cfg, "Share check")
	logPeriodHeader(cfg)
	source := keepaclient.New(cfg.APIKey, cfg.Domain)

	results, err := runCheck(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	if err := outwriter.NewOutWriter().WriteCheck(results, cfg, duration); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d violation(s) found\n", failed)
		os.Exit(1)
	}
	return nil
}

// runCheck fetches all products and gates each requested month.
func runCheck(ctx context.Context, cfg *contract.Config, source contract.ProductSource, mgr contract.CacheManager) ([]schema.CheckResult, error) {
	results := make([]schema.CheckResult, 0, len(cfg.ASINs)*len(cfg.Months))
	for _, res := range fetchProducts(ctx, cfg, source, mgr) {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), res.err)
			continue
		}
		checks, err := buildCheckResults(res.product, cfg)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", res.asin), err)
			continue
		}
		results = append(results, checks...)
	}

	if len(results) == 0 {
		return nil, errors.New("no usable buybox data for any ASIN")
	}
	return results, nil
}

// beginTracking starts an analysis run when an analysis store is configured.
func beginTracking(cfg *contract.Config, mgr contract.CacheManager, command string) (int64, contract.AnalysisStore) {
	if mgr == nil {
		return 0, nil
	}
	analysisStore := mgr.GetAnalysisStore()
	if analysisStore == nil {
		return 0, nil
	}

	configParams := map[string]any{
		"command": command,
		"domain":  cfg.Domain,
		"days":    cfg.Days,
		"year":    cfg.Year,
		"months":  schema.FormatMonths(cfg.Months),
		"seller":  cfg.Seller,
		"asins":   len(cfg.ASINs),
		"workers": cfg.Workers,
	}
	analysisID, err := analysisStore.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return 0, analysisStore
	}
	return analysisID, analysisStore
}

// endTracking finalizes an analysis run started by beginTracking.
func endTracking(analysisStore contract.AnalysisStore, analysisID int64, totalASINs int) {
	if analysisStore == nil || analysisID == 0 {
		return
	}
	if err := analysisStore.EndAnalysis(analysisID, time.Now(), totalASINs); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
