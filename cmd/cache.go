package cmd

import (
	"fmt"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/internal/iocache"
	"github.com/huangsam/keepwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no analysis tracking for cache commands)
	if err := iocache.InitCaching(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids API key
// validation and ASIN resolution for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the product response cache (saves Keepa API tokens)",
	Long: `Manage the cache of Keepa product responses.

Keepwatch caches product responses per ASIN, domain and hour so that repeated
analyses within the same hour reuse data instead of spending API tokens.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  keepwatch cache status

  # Clear cache to force fresh API fetches
  keepwatch cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached product responses",
	Long: `Delete all cached product responses from the configured backend.

Use this when:
- You need fresh data before the hourly cache bucket rolls over
- Cache may be stale or corrupted
- Testing API behavior without cache
- Reclaiming local disk space

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  keepwatch cache clear

  # Clear MySQL cache (set connection string via env variable)
  KEEPWATCH_CACHE_BACKEND=mysql KEEPWATCH_CACHE_DB_CONNECT="..." keepwatch cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the product response cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size

Use this to:
- Verify cache is working and connected
- Monitor cache growth over time
- Check when cache was last updated
- Debug cache-related issues

Examples:
  # Check cache status
  keepwatch cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetProductStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
