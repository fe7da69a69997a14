package core

import (
	"fmt"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// logBatchHeader prints a concise, 2-line header for each analysis phase.
func logBatchHeader(cfg *contract.Config, phase string) {
	if cfg.UseEmojis {
		fmt.Printf("🔎 %s: %d ASIN(s) on domain %d\n", phase, len(cfg.ASINs), cfg.Domain)
	} else {
		fmt.Printf("%s: %d ASIN(s) on domain %d\n", phase, len(cfg.ASINs), cfg.Domain)
	}
}

// logPeriodHeader prints the buybox period being analyzed.
func logPeriodHeader(cfg *contract.Config) {
	seller := cfg.Seller
	if seller == "" {
		seller = schema.AmazonSellerID
	}
	if cfg.UseEmojis {
		fmt.Printf("📅 Period: %d (months: %s), seller %s\n", cfg.Year, schema.FormatMonths(cfg.Months), seller)
	} else {
		fmt.Printf("Period: %d (months: %s), seller %s\n", cfg.Year, schema.FormatMonths(cfg.Months), seller)
	}
}
