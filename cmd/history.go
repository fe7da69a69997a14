package cmd

import (
	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd exports raw product history samples.
var historyCmd = &cobra.Command{
	Use:   "history [ASIN...]",
	Short: "Export raw rank or buybox history samples.",
	Long: `Dump the decoded Keepa history for one or more products.

Two kinds of history are supported:
- rank: sales rank samples from the selected category
- buybox: buybox seller transitions over time

Text output shows the most recent samples; CSV, JSON and Parquet output
include the full decoded history, which makes this the fastest way to get
Keepa data into pandas, DuckDB or a spreadsheet.

Examples:
  # Recent rank samples in the terminal
  keepwatch history B0ABCD1234

  # Full buybox history as CSV
  keepwatch history B0ABCD1234 --kind buybox --output csv --output-file buybox.csv

  # Parquet export for analytics tools
  keepwatch history --list my-watchlist --output parquet --output-file history`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot export history", err)
		}
	},
}
