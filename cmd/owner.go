package cmd

import (
	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// ownerCmd shows the current buybox owner per product.
var ownerCmd = &cobra.Command{
	Use:   "owner [ASIN...]",
	Short: "Show the current buybox owner for one or more products.",
	Long: `Report the most recent buybox holder recorded in Keepa history.

For each ASIN, Keepwatch reads the newest buybox history entry and classifies
the holder:
- Amazon: the buybox is held by Amazon itself
- 3rd Party: the buybox is held by a marketplace seller
- No Buybox: the buybox is suppressed or absent

The timestamp of the last observation is included so you can judge how
fresh the data is.

Examples:
  # Who owns the buybox right now?
  keepwatch owner B0ABCD1234

  # Check a whole watchlist as JSON
  keepwatch owner --list my-watchlist --output json`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOwner(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run owner lookup", err)
		}
	},
}
