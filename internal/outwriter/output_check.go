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

// PrintCheckResults outputs the buybox share gate results, dispatching based on the output format configured.
func PrintCheckResults(results []schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForCheck(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForCheck(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printCheckTable(results, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing check table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForCheck handles opening the file and calling the JSON writer.
func printJSONResultsForCheck(results []schema.CheckResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON check results")
}

// printCSVResultsForCheck handles opening the file and calling the CSV writer.
func printCSVResultsForCheck(results []schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"asin", "year", "month", "seller_id", "day_share", "min_share", "passed"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range results {
				row := []string{
					r.ASIN,
					fmt.Sprintf("%d", r.Year),
					fmt.Sprintf("%d", r.Month),
					r.SellerID,
					fmtOptFloat(r.DayShare, fmtFloat),
					fmtFloat(r.MinShare),
					fmt.Sprintf("%t", r.Passed),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV check results")
}

// printCheckTable prints the gate results in a table.
func printCheckTable(results []schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"ASIN", "Period", "Seller", "Day %", "Min %", "Result"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	passed := 0
	for _, r := range results {
		result := "FAIL"
		if r.Passed {
			result = "PASS"
			passed++
		}
		if cfg.UseEmojis {
			if r.Passed {
				result = "✅ " + result
			} else {
				result = "❌ " + result
			}
		}
		row := []string{
			r.ASIN,
			schema.PeriodLabel(r.Year, r.Month),
			r.SellerID,
			fmtOptFloat(r.DayShare, fmtFloat),
			fmtFloat(r.MinShare),
			result,
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d/%d checks passed in %v. Cache backend: %s\n", passed, len(results), duration, cfg.CacheBackend)
	return nil
}
