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

// PrintOwnerResults outputs the current buybox holder reports, dispatching based on the output format configured.
func PrintOwnerResults(reports []schema.OwnerReport, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForOwner(reports, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForOwner(reports, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printOwnerTable(reports, cfg, duration); err != nil {
			return fmt.Errorf("error writing owner table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForOwner handles opening the file and calling the JSON writer.
func printJSONResultsForOwner(reports []schema.OwnerReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, reports)
	}, "Wrote JSON owner results")
}

// printCSVResultsForOwner handles opening the file and calling the CSV writer.
func printCSVResultsForOwner(reports []schema.OwnerReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"asin", "title", "seller_id", "owner_type", "last_updated"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range reports {
				row := []string{
					r.ASIN,
					r.Title,
					r.SellerID,
					r.OwnerType,
					r.LastUpdated.Format(contract.DateTimeFormat),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV owner results")
}

// printOwnerTable prints the current buybox holders in a table.
func printOwnerTable(reports []schema.OwnerReport, cfg *contract.Config, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"ASIN", "Title", "Seller", "Type", "Last Updated"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, r := range reports {
		seller := r.SellerID
		if seller == "" {
			seller = "none"
		}
		row := []string{
			r.ASIN,
			contract.TruncateTitle(r.Title, GetMaxTableTitleWidth(cfg)),
			seller,
			r.OwnerType,
			r.LastUpdated.Format("2006-01-02 15:04"),
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

	fmt.Printf("Owner lookup completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return nil
}
