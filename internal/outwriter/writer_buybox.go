package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// writeJSONResultsForBuybox marshals the buybox reports to JSON and writes them.
func writeJSONResultsForBuybox(w io.Writer, reports []schema.BuyboxReport) error {
	return writeJSON(w, reports)
}

// writeCSVResultsForBuybox writes the monthly ownership records to a CSV writer.
func writeCSVResultsForBuybox(w *csv.Writer, reports []schema.BuyboxReport, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"asin",
		"title",
		"year",
		"month",
		"seller_id",
		"sampled_days",
		"owned_days",
		"day_share",
		"sample_count",
		"owner_samples",
		"count_share",
		"time_share",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, report := range reports {
		for _, rec := range report.Records {
			row := []string{
				report.ASIN,
				report.Title,
				fmt.Sprintf("%d", rec.Year),
				fmt.Sprintf("%d", rec.Month),
				rec.SellerID,
				fmt.Sprintf("%d", rec.SampledDays),
				fmt.Sprintf("%d", rec.OwnedDays),
				fmtOptFloat(rec.DayShare, fmtFloat),
				fmt.Sprintf("%d", rec.SampleCount),
				fmt.Sprintf("%d", rec.OwnerSamples),
				fmtOptFloat(rec.CountShare, fmtFloat),
				fmtOptFloat(rec.TimeShare, fmtFloat),
				contract.GetPlainShareLabel(rec.DayShare),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
