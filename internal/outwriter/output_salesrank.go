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

// PrintSalesRankResults outputs the sales rank reports, dispatching based on the output format configured.
func PrintSalesRankResults(reports []schema.RankReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSalesRank(reports, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSalesRank(reports, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSalesRankTable(reports, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing sales rank table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSalesRank handles opening the file and calling the JSON writer.
func printJSONResultsForSalesRank(reports []schema.RankReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSalesRank(w, reports)
	}, "Wrote JSON sales rank results")
}

// printCSVResultsForSalesRank handles opening the file and calling the CSV writer.
func printCSVResultsForSalesRank(reports []schema.RankReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSalesRank(csvWriter, reports, fmtFloat)
	}, "Wrote CSV sales rank results")
}

// printSalesRankTable prints the sales rank reports in a table.
func printSalesRankTable(reports []schema.RankReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"ASIN", "Title", "Category", "Score", "Points", "Avg", "Min", "Max", "Changes"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, r := range reports {
		row := []string{
			r.ASIN,
			contract.TruncateTitle(r.Title, GetMaxTableTitleWidth(cfg)),
			r.CategoryName,
			fmtFloat(r.Score),
			fmt.Sprintf("%d", r.Stats.Count),
			fmtOptFloat(r.Stats.Average, fmtFloat),
			fmtOptInt(r.Stats.Min),
			fmtOptInt(r.Stats.Max),
			fmt.Sprintf("%d", r.Stats.ChangeCount),
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

	fmt.Printf("Sales rank analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return nil
}
