package outwriter

import (
	"encoding/csv"
	"fmt"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// writeCSVResultsForHistory writes the normalized history samples to a CSV writer.
// Rank samples carry an empty seller column and owner samples an empty rank
// column, so both kinds share one flat layout.
func writeCSVResultsForHistory(w *csv.Writer, results []schema.HistoryResult) error {
	// 1. Write Header Row
	header := []string{
		"asin",
		"kind",
		"category_id",
		"time",
		"rank",
		"seller_id",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, res := range results {
		for _, s := range res.Ranks {
			row := []string{
				res.ASIN,
				string(res.Kind),
				res.CategoryID,
				s.Time.Format(contract.DateTimeFormat),
				fmt.Sprintf("%d", s.Value),
				"",
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		for _, s := range res.Owners {
			row := []string{
				res.ASIN,
				string(res.Kind),
				"",
				s.Time.Format(contract.DateTimeFormat),
				"",
				s.SellerID,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
