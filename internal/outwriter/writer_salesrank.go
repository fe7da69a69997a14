package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// writeJSONResultsForSalesRank marshals the rank reports to JSON and writes them.
func writeJSONResultsForSalesRank(w io.Writer, reports []schema.RankReport) error {
	return writeJSON(w, reports)
}

// writeCSVResultsForSalesRank writes the rank report data to a CSV writer.
func writeCSVResultsForSalesRank(w *csv.Writer, reports []schema.RankReport, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"asin",
		"title",
		"category_id",
		"category_name",
		"score",
		"window_start",
		"window_end",
		"data_points",
		"average_rank",
		"min_rank",
		"max_rank",
		"rank_changes",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range reports {
		row := []string{
			r.ASIN,
			r.Title,
			r.CategoryID,
			r.CategoryName,
			fmtFloat(r.Score),
			r.WindowStart.Format(contract.DateTimeFormat),
			r.WindowEnd.Format(contract.DateTimeFormat),
			fmt.Sprintf("%d", r.Stats.Count),
			fmtOptFloat(r.Stats.Average, fmtFloat),
			fmtOptInt(r.Stats.Min),
			fmtOptInt(r.Stats.Max),
			fmt.Sprintf("%d", r.Stats.ChangeCount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
