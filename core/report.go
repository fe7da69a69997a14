package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// BuildCandidates normalizes every ranking category of a product into a
// candidate series. Category names come from the category tree; categories
// without a tree entry keep their numeric ID as the display name.
func BuildCandidates(product *schema.Product) ([]schema.CategorySeries, error) {
	names := make(map[string]string, len(product.CategoryTree))
	for _, cat := range product.CategoryTree {
		names[strconv.FormatInt(cat.CatID, 10)] = cat.Name
	}

	candidates := make([]schema.CategorySeries, 0, len(product.SalesRanks))
	for catID, raw := range product.SalesRanks {
		samples, err := NormalizeRankHistory(raw)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", catID, err)
		}
		name, ok := names[catID]
		if !ok {
			name = catID
		}
		candidates = append(candidates, schema.CategorySeries{
			CategoryID: catID,
			Name:       name,
			Samples:    samples,
		})
	}
	return candidates, nil
}

// buildRankReport selects the densest ranking category of a product and
// aggregates its samples over the last cfg.Days days ending at now.
func buildRankReport(product *schema.Product, cfg *contract.Config, now time.Time) (*schema.RankReport, error) {
	candidates, err := BuildCandidates(product)
	if err != nil {
		return nil, err
	}

	sel, err := SelectCategory(candidates)
	if err != nil {
		return nil, err
	}

	end := now
	start := end.Add(-time.Duration(cfg.Days) * 24 * time.Hour)
	stats := AggregateWindow(sel.Chosen.Samples, start, end)

	// Keep a short tail of in-window samples for display
	var window []schema.Sample
	for _, s := range sel.Chosen.Samples {
		if s.Time.Before(start) || !s.Time.Before(end) {
			continue
		}
		window = append(window, s)
	}
	if len(window) > cfg.ResultLimit {
		window = window[len(window)-cfg.ResultLimit:]
	}

	return &schema.RankReport{
		ASIN:         product.ASIN,
		Title:        product.Title,
		CategoryID:   sel.Chosen.CategoryID,
		CategoryName: sel.Chosen.Name,
		Score:        sel.Score,
		Days:         cfg.Days,
		WindowStart:  start,
		WindowEnd:    end,
		Stats:        stats,
		Recent:       window,
	}, nil
}

// buildBuyboxReport computes monthly ownership records for the configured
// seller across all requested months.
func buildBuyboxReport(product *schema.Product, cfg *contract.Config) (*schema.BuyboxReport, error) {
	owners, err := NormalizeOwnerHistory(product.BuyBoxSellerIDHistory)
	if err != nil {
		return nil, err
	}

	seller := cfg.Seller
	if seller == "" {
		seller = schema.AmazonSellerID
	}

	records := make([]schema.OwnershipRecord, 0, len(cfg.Months))
	for _, month := range cfg.Months {
		rec, err := MonthlyOwnership(owners, seller, cfg.Year, month)
		if err != nil {
			return nil, err
		}
		rec.ASIN = product.ASIN
		records = append(records, *rec)
	}

	return &schema.BuyboxReport{
		ASIN:    product.ASIN,
		Title:   product.Title,
		Records: records,
	}, nil
}

// buildOwnerReport reads the most recent buybox holder from the raw history.
// Unlike the normalized history, placeholder entries are kept here: a trailing
// placeholder means the buybox is currently vacant or suppressed.
func buildOwnerReport(product *schema.Product) (*schema.OwnerReport, error) {
	raw := product.BuyBoxSellerIDHistory
	if len(raw)%2 != 0 {
		return nil, ErrMalformedHistory
	}

	report := &schema.OwnerReport{
		ASIN:      product.ASIN,
		Title:     product.Title,
		OwnerType: "No Buybox",
	}

	// Walk backwards to the newest pair with a parseable timestamp
	for i := len(raw) - 2; i >= 0; i -= 2 {
		minutes, err := strconv.Atoi(strings.TrimSpace(raw[i]))
		if err != nil {
			continue
		}
		sellerID := raw[i+1]
		report.LastUpdated = schema.TimeFromKeepaMinutes(minutes)
		if !schema.IsPlaceholderSeller(sellerID) {
			report.SellerID = sellerID
			report.OwnerType = schema.OwnerTypeFor(sellerID)
		}
		break
	}

	return report, nil
}

// buildHistoryResult dumps the normalized history of the configured kind.
// For rank history the densest category is chosen the same way the salesrank
// report chooses it.
func buildHistoryResult(product *schema.Product, cfg *contract.Config) (*schema.HistoryResult, error) {
	result := &schema.HistoryResult{
		ASIN:  product.ASIN,
		Title: product.Title,
		Kind:  cfg.HistoryKind,
	}

	switch cfg.HistoryKind {
	case schema.BuyboxHistory:
		owners, err := NormalizeOwnerHistory(product.BuyBoxSellerIDHistory)
		if err != nil {
			return nil, err
		}
		result.Owners = owners

	default: // Rank history
		candidates, err := BuildCandidates(product)
		if err != nil {
			return nil, err
		}
		sel, err := SelectCategory(candidates)
		if err != nil {
			return nil, err
		}
		result.CategoryID = sel.Chosen.CategoryID
		result.CategoryName = sel.Chosen.Name
		result.Ranks = sel.Chosen.Samples
	}

	return result, nil
}

// buildCheckResults gates the seller's day-based share against cfg.MinShare
// for every requested month. A month without data fails the gate since a
// missing share cannot clear a positive threshold.
func buildCheckResults(product *schema.Product, cfg *contract.Config) ([]schema.CheckResult, error) {
	owners, err := NormalizeOwnerHistory(product.BuyBoxSellerIDHistory)
	if err != nil {
		return nil, err
	}

	seller := cfg.Seller
	if seller == "" {
		seller = schema.AmazonSellerID
	}

	results := make([]schema.CheckResult, 0, len(cfg.Months))
	for _, month := range cfg.Months {
		rec, err := MonthlyOwnership(owners, seller, cfg.Year, month)
		if err != nil {
			return nil, err
		}
		passed := rec.DayShare != nil && *rec.DayShare >= cfg.MinShare
		results = append(results, schema.CheckResult{
			ASIN:     product.ASIN,
			Year:     cfg.Year,
			Month:    month,
			SellerID: seller,
			DayShare: rec.DayShare,
			MinShare: cfg.MinShare,
			Passed:   passed,
		})
	}

	return results, nil
}
