package contract

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/keepwatch/schema"
)

// Default values for configuration.
const (
	DefaultDays        = 30
	MaxDays            = 365
	DefaultResultLimit = 10
	MaxResultLimit     = 100
	DefaultPrecision   = 2
	DefaultDomain      = 1 // Amazon.com
	MaxDomain          = 12
	MinYear            = 2011 // Keepa has no data before its epoch
	MaxYear            = 2030
	DefaultMinShare    = 50.0
)

// CacheGranularity defines the time bucket folded into product cache keys.
// Aligning keys to the hour makes repeated lookups within the same hour hit
// the cache instead of spending API tokens.
const CacheGranularity = time.Hour

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	APIKey string
	Domain int

	ASINs    []string
	ListName string

	// Sales rank analysis window
	Days int

	// Buybox analysis period
	Year   int
	Months []int
	Seller string

	// History export
	HistoryKind schema.HistoryKind

	// Share gate for the check command
	MinShare float64

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a shallow copy of the config with its own slices, so MCP
// handlers can override fields per request without racing each other.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ASINs = append([]string(nil), c.ASINs...)
	clone.Months = append([]int(nil), c.Months...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ASINArgs []string

	// AllowEmptyASINs is set manually by server-style commands whose
	// requests carry their own ASINs, so startup needs none.
	AllowEmptyASINs bool

	// --- Fields from rootCmd.PersistentFlags() ---
	APIKey            string `mapstructure:"api-key"`
	Domain            int    `mapstructure:"domain"`
	List              string `mapstructure:"list"`
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from salesrankCmd.Flags() ---
	Days int `mapstructure:"days"`

	// --- Fields from buyboxCmd / checkCmd flags ---
	Year     int     `mapstructure:"year"`
	Months   string  `mapstructure:"months"`
	Seller   string  `mapstructure:"seller"`
	MinShare float64 `mapstructure:"min-share"`

	// --- Fields from historyCmd.Flags() ---
	Kind string `mapstructure:"kind"`
}

// ProcessAndValidate validates the raw input and populates cfg from it.
// Positional arguments carry ASINs; when none are given, the named saved list
// is resolved through the provided resolver.
func ProcessAndValidate(cfg *Config, resolver ASINResolver, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validatePeriodInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveASINs(cfg, resolver, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ListName = input.List

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. API key ---
	cfg.APIKey = strings.TrimSpace(input.APIKey)
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required: set KEEPWATCH_API_KEY or 'api-key' in the config file")
	}

	// --- 2. Domain ---
	if input.Domain < 1 || input.Domain > MaxDomain {
		return fmt.Errorf("domain must be between 1 and %d (received %d)", MaxDomain, input.Domain)
	}
	cfg.Domain = input.Domain

	// --- 3. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 4. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 5. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// validatePeriodInputs validates the analysis window fields shared by the
// salesrank, buybox and check commands. The ranges mirror what Keepa can
// actually answer for.
func validatePeriodInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Days < 1 || input.Days > MaxDays {
		return fmt.Errorf("days must be between 1 and %d (received %d)", MaxDays, input.Days)
	}
	cfg.Days = input.Days

	if input.Year < MinYear || input.Year > MaxYear {
		return fmt.Errorf("year must be between %d and %d (received %d)", MinYear, MaxYear, input.Year)
	}
	cfg.Year = input.Year

	months, err := ParseMonths(input.Months)
	if err != nil {
		return err
	}
	cfg.Months = months

	cfg.Seller = strings.TrimSpace(input.Seller)
	if cfg.Seller == "" {
		cfg.Seller = schema.AmazonSellerID
	}

	if input.MinShare < 0 || input.MinShare > 100 {
		return fmt.Errorf("min-share must be between 0 and 100 (received %g)", input.MinShare)
	}
	cfg.MinShare = input.MinShare

	kind := schema.HistoryKind(strings.ToLower(input.Kind))
	if _, ok := schema.ValidHistoryKinds[kind]; !ok {
		return fmt.Errorf("invalid history kind '%s'. must be rank or buybox", input.Kind)
	}
	cfg.HistoryKind = kind

	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Validate that cache and analysis use different databases
		if cfg.CacheBackend == cfg.AnalysisBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			analysisDBPath := cfg.AnalysisDBConnect
			if analysisDBPath == "" {
				analysisDBPath = GetAnalysisDBFilePath()
			}
			if cacheDBPath == analysisDBPath {
				return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// resolveASINs populates cfg.ASINs from positional args, falling back to the
// named saved list when no args were given.
func resolveASINs(cfg *Config, resolver ASINResolver, input *ConfigRawInput) error {
	asins := input.ASINArgs
	if len(asins) == 0 && cfg.ListName != "" {
		if resolver == nil {
			return fmt.Errorf("no ASIN list resolver available for --list %q", cfg.ListName)
		}
		resolved, err := resolver.ResolveList(cfg.ListName)
		if err != nil {
			return fmt.Errorf("failed to load ASIN list %q: %w", cfg.ListName, err)
		}
		asins = resolved
	}
	if len(asins) == 0 {
		if input.AllowEmptyASINs {
			return nil
		}
		return fmt.Errorf("at least one ASIN is required (pass as arguments or via --list)")
	}

	cfg.ASINs = cfg.ASINs[:0]
	for _, a := range asins {
		normalized := schema.NormalizeASIN(a)
		if !schema.IsValidASIN(normalized) {
			return fmt.Errorf("invalid ASIN %q: must be exactly 10 letters and digits", a)
		}
		cfg.ASINs = append(cfg.ASINs, normalized)
	}
	return nil
}

// ParseMonths parses a comma-separated list of month numbers such as "1,2,3".
// An empty string means "all months"; out-of-range months are rejected.
func ParseMonths(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		months := make([]int, 12)
		for i := range months {
			months[i] = i + 1
		}
		return months, nil
	}

	var months []int
	seen := make(map[int]struct{})
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		m, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: use comma-separated numbers (e.g., 1,2,3)", trimmed)
		}
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %d: months must be 1-12", m)
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("no valid months in %q", s)
	}
	return months, nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateMonths re-validates a months override supplied per MCP request.
func RevalidateMonths(cfg *Config, monthsStr string) error {
	if monthsStr == "" {
		return nil
	}
	months, err := ParseMonths(monthsStr)
	if err != nil {
		return err
	}
	cfg.Months = months
	return nil
}

// RevalidateASINs re-validates an ASIN override supplied per MCP request.
func RevalidateASINs(cfg *Config, asins []string) error {
	if len(asins) == 0 {
		return nil
	}
	cfg.ASINs = cfg.ASINs[:0]
	for _, a := range asins {
		normalized := schema.NormalizeASIN(a)
		if !schema.IsValidASIN(normalized) {
			return fmt.Errorf("invalid ASIN %q: must be exactly 10 letters and digits", a)
		}
		cfg.ASINs = append(cfg.ASINs, normalized)
	}
	return nil
}
