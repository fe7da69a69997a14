package cmd

import (
	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// salesrankCmd performs sales rank trend analysis.
var salesrankCmd = &cobra.Command{
	Use:   "salesrank [ASIN...]",
	Short: "Show sales rank statistics for one or more products.",
	Long: `Fetch Keepa product history and compute sales rank statistics per product.

For each ASIN, Keepwatch picks the most trustworthy sales rank category
(preferring dense, low-rank histories), then aggregates the rank samples
inside the analysis window, helping you:
- Track how a product's rank trends over the last N days
- Compare average, best and worst ranks across a portfolio
- Spot volatile products via the rank change count
- Export the numbers for dashboards and spreadsheets

Products with no usable rank history are skipped with a warning.

Examples:
  # Last 30 days for two products
  keepwatch salesrank B0ABCD1234 B0EFGH5678

  # Use a saved ASIN list and a 90-day window
  keepwatch salesrank --list my-watchlist --days 90

  # Export findings to CSV for tracking
  keepwatch salesrank B0ABCD1234 --output csv --output-file ranks.csv`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSalesRank(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run sales rank analysis", err)
		}
	},
}
