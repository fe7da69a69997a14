package cmd

import (
	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [ASIN...]",
	Short: "Enforce buybox ownership thresholds (fails build on violations)",
	Long: `Gate on buybox ownership and fail with a non-zero exit code on violations.

For each product and month, the seller's buybox day share is compared against
the --min-share threshold. Any month below the threshold counts as a violation.

Use cases:
- Alert when Amazon starts losing the buybox on key listings
- Monitor your own seller account's buybox health in CI
- Catch ownership regressions before they hit revenue

Examples:
  # Fail if Amazon's day share drops below 50% in any month of 2024
  keepwatch check B0ABCD1234 --year 2024

  # Gate a third-party seller at 80%
  keepwatch check --list my-watchlist --year 2024 --seller A3EXAMPLE9 --min-share 80

  # Only watch the current quarter
  keepwatch check B0ABCD1234 --year 2025 --months 7,8,9 --min-share 60`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Ownership check failed", err)
		}
	},
}
