// Package cmd defines the command-line interface for keepwatch.
package cmd

import (
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(salesrankCmd)
	rootCmd.AddCommand(buyboxCmd)
	rootCmd.AddCommand(ownerCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(asinCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the asin subcommands to the parent asin command
	asinCmd.AddCommand(asinListCmd)
	asinCmd.AddCommand(asinAddCmd)
	asinCmd.AddCommand(asinRemoveCmd)
	asinCmd.AddCommand(asinClearCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "Keepa API key (prefer KEEPWATCH_API_KEY env variable)")
	rootCmd.PersistentFlags().IntP("domain", "d", contract.DefaultDomain, "Keepa domain ID (1 = amazon.com, 2 = .co.uk, 3 = .de, ...)")
	rootCmd.PersistentFlags().String("list", "", "Name of a saved ASIN list to analyze when no ASINs are given")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of recent samples to display per product")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Period flags are shared by salesrank, buybox, history and check, so they
	// live on the root command to keep a single Viper binding per key.
	rootCmd.PersistentFlags().Int("days", contract.DefaultDays, "Analysis window in days, counted back from now")
	rootCmd.PersistentFlags().Int("year", contract.MinYear, "Calendar year for buybox ownership analysis")
	rootCmd.PersistentFlags().String("months", "", "Comma-separated month numbers (e.g., 1,2,3); empty = all months")
	rootCmd.PersistentFlags().String("seller", "", "Seller ID to compute ownership for (default: Amazon)")
	rootCmd.PersistentFlags().Float64("min-share", contract.DefaultMinShare, "Minimum buybox day share percentage for CI/CD gating")
	rootCmd.PersistentFlags().String("kind", string(schema.RankHistory), "History kind to export: rank or buybox")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
