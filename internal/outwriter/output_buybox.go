package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBuyboxResults outputs the buybox ownership reports, dispatching based on the output format configured.
func PrintBuyboxResults(reports []schema.BuyboxReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForBuybox(reports, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForBuybox(reports, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printBuyboxTable(reports, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing buybox table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForBuybox handles opening the file and calling the JSON writer.
func printJSONResultsForBuybox(reports []schema.BuyboxReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForBuybox(w, reports)
	}, "Wrote JSON buybox results")
}

// printCSVResultsForBuybox handles opening the file and calling the CSV writer.
func printCSVResultsForBuybox(reports []schema.BuyboxReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForBuybox(csvWriter, reports, fmtFloat)
	}, "Wrote CSV buybox results")
}

// printBuyboxTable prints the monthly ownership records in a table.
func printBuyboxTable(reports []schema.BuyboxReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"ASIN", "Title", "Period", "Seller", "Days", "Day %", "Count %", "Time %", "Label"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// Pick the label formatter based on color preference
	labelFor := contract.GetPlainShareLabel
	if cfg.UseColors {
		labelFor = contract.GetColorShareLabel
	}

	// 3. Prepare Data Rows
	var data [][]string
	for _, report := range reports {
		for _, rec := range report.Records {
			row := []string{
				report.ASIN,
				contract.TruncateTitle(report.Title, GetMaxTableTitleWidth(cfg)),
				schema.PeriodLabel(rec.Year, rec.Month),
				rec.SellerID,
				fmt.Sprintf("%d/%d", rec.OwnedDays, rec.SampledDays),
				fmtOptFloat(rec.DayShare, fmtFloat),
				fmtOptFloat(rec.CountShare, fmtFloat),
				fmtOptFloat(rec.TimeShare, fmtFloat),
				labelFor(rec.DayShare),
			}
			data = append(data, row)
		}
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Buybox analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return nil
}
