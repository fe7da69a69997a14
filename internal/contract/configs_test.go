package contract

import (
	"testing"

	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes all validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ASINArgs:     []string{"B0ABCD1234"},
		APIKey:       "test-key",
		Domain:       1,
		Limit:        10,
		Workers:      4,
		Precision:    2,
		Output:       "text",
		Days:         30,
		Year:         2024,
		Months:       "1,2",
		MinShare:     50.0,
		Kind:         "rank",
		CacheBackend: "sqlite",
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{
			name:   "valid minimal config",
			mutate: func(_ *ConfigRawInput) {},
		},
		{
			name:        "missing API key",
			mutate:      func(in *ConfigRawInput) { in.APIKey = "  " },
			expectError: "API key is required",
		},
		{
			name:        "domain out of range",
			mutate:      func(in *ConfigRawInput) { in.Domain = 13 },
			expectError: "domain must be between",
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: "workers must be greater than 0",
		},
		{
			name:        "invalid output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "days out of range",
			mutate:      func(in *ConfigRawInput) { in.Days = MaxDays + 1 },
			expectError: "days must be between",
		},
		{
			name:        "year before the epoch",
			mutate:      func(in *ConfigRawInput) { in.Year = 2010 },
			expectError: "year must be between",
		},
		{
			name:        "bad months",
			mutate:      func(in *ConfigRawInput) { in.Months = "1,13" },
			expectError: "invalid month",
		},
		{
			name:        "min share out of range",
			mutate:      func(in *ConfigRawInput) { in.MinShare = 101 },
			expectError: "min-share must be between",
		},
		{
			name:        "invalid history kind",
			mutate:      func(in *ConfigRawInput) { in.Kind = "price" },
			expectError: "invalid history kind",
		},
		{
			name:        "invalid cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: "invalid cache backend",
		},
		{
			name:        "mysql backend requires connection string",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "mysql" },
			expectError: "cache-db-connect is required",
		},
		{
			name:        "invalid ASIN argument",
			mutate:      func(in *ConfigRawInput) { in.ASINArgs = []string{"not-an-asin"} },
			expectError: "invalid ASIN",
		},
		{
			name:        "no ASINs at all",
			mutate:      func(in *ConfigRawInput) { in.ASINArgs = nil },
			expectError: "at least one ASIN is required",
		},
		{
			name:        "invalid emoji flag",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: "invalid --emoji value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, nil, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"B0ABCD1234"}, cfg.ASINs)
			assert.Equal(t, schema.TextOut, cfg.Output)
			assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
		})
	}
}

func TestProcessAndValidateNormalizesASINs(t *testing.T) {
	input := validInput()
	input.ASINArgs = []string{" b0abcd1234 "}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, nil, input))
	assert.Equal(t, []string{"B0ABCD1234"}, cfg.ASINs)
}

func TestProcessAndValidateDefaultSeller(t *testing.T) {
	input := validInput()
	input.Seller = "  "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, nil, input))
	assert.Equal(t, schema.AmazonSellerID, cfg.Seller)
}

func TestProcessAndValidateResolvesList(t *testing.T) {
	input := validInput()
	input.ASINArgs = nil
	input.List = "watchlist"

	resolver := &MockASINResolver{}
	resolver.On("ResolveList", "watchlist").Return([]string{"b0abcd1234", "B0EFGH5678"}, nil)

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, resolver, input))
	assert.Equal(t, []string{"B0ABCD1234", "B0EFGH5678"}, cfg.ASINs)

	resolver.AssertExpectations(t)
}

func TestProcessAndValidateAllowEmptyASINs(t *testing.T) {
	input := validInput()
	input.ASINArgs = nil
	input.AllowEmptyASINs = true

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, nil, input))
	assert.Empty(t, cfg.ASINs)
}

func TestParseMonths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty means all months", "", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, false},
		{"simple list", "1,2,3", []int{1, 2, 3}, false},
		{"spaces tolerated", " 4 , 5 ", []int{4, 5}, false},
		{"duplicates collapsed", "6,6,7", []int{6, 7}, false},
		{"out of range", "0", nil, true},
		{"thirteen", "13", nil, true},
		{"not a number", "jan", nil, true},
		{"only separators", ",,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonths(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/keepwatch", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/keepwatch", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=keepwatch", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRevalidateMonths(t *testing.T) {
	cfg := &Config{Months: []int{1}}

	require.NoError(t, RevalidateMonths(cfg, ""))
	assert.Equal(t, []int{1}, cfg.Months, "empty override keeps the existing months")

	require.NoError(t, RevalidateMonths(cfg, "3,4"))
	assert.Equal(t, []int{3, 4}, cfg.Months)

	assert.Error(t, RevalidateMonths(cfg, "0"))
}

func TestRevalidateASINs(t *testing.T) {
	cfg := &Config{ASINs: []string{"B0ABCD1234"}}

	require.NoError(t, RevalidateASINs(cfg, nil))
	assert.Equal(t, []string{"B0ABCD1234"}, cfg.ASINs, "empty override keeps the existing ASINs")

	require.NoError(t, RevalidateASINs(cfg, []string{"b0efgh5678"}))
	assert.Equal(t, []string{"B0EFGH5678"}, cfg.ASINs)

	assert.Error(t, RevalidateASINs(cfg, []string{"nope"}))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		ASINs:  []string{"B0ABCD1234"},
		Months: []int{1, 2},
		Domain: 1,
	}

	clone := cfg.Clone()
	clone.ASINs[0] = "B0EFGH5678"
	clone.Months[0] = 12

	assert.Equal(t, "B0ABCD1234", cfg.ASINs[0], "clone owns its ASIN slice")
	assert.Equal(t, 1, cfg.Months[0], "clone owns its months slice")
}

func FuzzParseMonths(f *testing.F) {
	seeds := []string{"", "1,2,3", "12", "0", "13", "a,b", " 5 , 5 ", ",,", "1,2,12,12"}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		months, err := ParseMonths(s)
		if err != nil {
			return
		}
		assert.NotEmpty(t, months)
		seen := make(map[int]struct{}, len(months))
		for _, m := range months {
			assert.GreaterOrEqual(t, m, 1)
			assert.LessOrEqual(t, m, 12)
			_, dup := seen[m]
			assert.False(t, dup, "months must be unique")
			seen[m] = struct{}{}
		}
	})
}
