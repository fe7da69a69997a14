package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "45.45", fmtFloat(45.4545))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "45", fmtFloat(45.4545))
}

func TestFmtOptFloat(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "n/a", fmtOptFloat(nil, fmtFloat))

	v := 12.345
	assert.Equal(t, "12.3", fmtOptFloat(&v, fmtFloat))
}

func TestFmtOptInt(t *testing.T) {
	assert.Equal(t, "n/a", fmtOptInt(nil))

	v := 42
	assert.Equal(t, "42", fmtOptInt(&v))
}

func TestGetMaxTableTitleWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal clamps to minimum", 90, 15},
		{"mid terminal uses what is left", 100, 20},
		{"wide terminal clamps to maximum", 200, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, GetMaxTableTitleWidth(cfg))
		})
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"count": 2}))
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}

func TestWriteCSVResultsForSalesRank(t *testing.T) {
	avg := 225.5
	minRank := 100
	maxRank := 300
	reports := []schema.RankReport{
		{
			ASIN:         "B0ABCD1234",
			Title:        "Cordless Drill",
			CategoryID:   "1000",
			CategoryName: "Electronics",
			Score:        45.45,
			WindowStart:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			WindowEnd:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			Stats: schema.WindowStats{
				Count:       4,
				Average:     &avg,
				Min:         &minRank,
				Max:         &maxRank,
				ChangeCount: 2,
			},
		},
		{
			ASIN:  "B0EFGH5678",
			Title: "Mystery Gadget", // no usable rank data
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeCSVResultsForSalesRank(w, reports, fmtFloat))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "asin", rows[0][0])
	assert.Equal(t, "rank_changes", rows[0][11])

	assert.Equal(t, "B0ABCD1234", rows[1][0])
	assert.Equal(t, "45.45", rows[1][4])
	assert.Equal(t, "225.50", rows[1][8])
	assert.Equal(t, "100", rows[1][9])

	assert.Equal(t, "n/a", rows[2][8], "missing stats render as n/a")
	assert.Equal(t, "n/a", rows[2][9])
}

func TestWriteJSONResultsForSalesRank(t *testing.T) {
	reports := []schema.RankReport{{ASIN: "B0ABCD1234", CategoryID: "1000"}}

	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForSalesRank(&buf, reports))

	var got []schema.RankReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B0ABCD1234", got[0].ASIN)
}
