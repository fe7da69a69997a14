package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func share(v float64) *float64 { return &v }

func TestGetPlainShareLabel(t *testing.T) {
	tests := []struct {
		name  string
		share *float64
		want  string
	}{
		{"nil means no data", nil, NoDataValue},
		{"dominant at boundary", share(80), DominantValue},
		{"dominant full", share(100), DominantValue},
		{"strong at boundary", share(50), StrongValue},
		{"strong below dominant", share(79.9), StrongValue},
		{"contested at boundary", share(20), ContestedValue},
		{"minor below contested", share(19.9), MinorValue},
		{"minor at zero", share(0), MinorValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainShareLabel(tt.share))
		})
	}
}

func TestGetColorShareLabel(t *testing.T) {
	// The colored label must always contain the plain text, whether or not
	// the terminal actually renders escape codes.
	tests := []*float64{nil, share(90), share(60), share(30), share(5)}
	for _, s := range tests {
		plain := GetPlainShareLabel(s)
		assert.Contains(t, GetColorShareLabel(s), plain)
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		maxWidth int
		want     string
	}{
		{"short title untouched", "Widget", 20, "Widget"},
		{"long title truncated", "A very long product title", 10, "A very ..."},
		{"exact width untouched", "1234567890", 10, "1234567890"},
		{"tiny width untouched", "abcdef", 3, "abcdef"},
		{"unicode title", "五金工具超级旗舰店的产品", 8, "五金工具超..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateTitle(tt.title, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "YES", "true", "True", "1"}
	for _, s := range truthy {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, "ParseBoolString(%q)", s)
	}

	falsy := []string{"no", "NO", "false", "False", "0"}
	for _, s := range falsy {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, "ParseBoolString(%q)", s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	assert.NoError(t, err)
	assert.NotNil(t, f, "empty path falls back to stdout")

	path := t.TempDir() + "/out.csv"
	f, err = SelectOutputFile(path)
	assert.NoError(t, err)
	assert.NotNil(t, f)
	assert.NoError(t, f.Close())
}
