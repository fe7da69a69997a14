package cmd

import (
	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// buyboxCmd performs monthly buybox ownership analysis.
var buyboxCmd = &cobra.Command{
	Use:   "buybox [ASIN...]",
	Short: "Show monthly buybox ownership shares for a seller.",
	Long: `Compute how often a seller owned the buybox for each product and month.

For every requested month, Keepwatch walks the buybox seller history and
reports three ownership views:
- Day share: percentage of sampled days where the seller held the buybox
  at least once (any appearance counts the whole day)
- Count share: percentage of individual buybox samples held by the seller
- Time share: percentage of wall-clock time the seller held the buybox

Days where the buybox was suppressed or absent still count as sampled days.
The seller defaults to Amazon itself when --seller is not given.

Examples:
  # Amazon's ownership for all of 2024
  keepwatch buybox B0ABCD1234 --year 2024

  # A third-party seller over Q1
  keepwatch buybox B0ABCD1234 --year 2024 --months 1,2,3 --seller A3EXAMPLE9

  # Export monthly shares for a saved list
  keepwatch buybox --list my-watchlist --year 2024 --output csv --output-file buybox.csv`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBuybox(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run buybox analysis", err)
		}
	},
}
