package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/internal/parquet"
	"github.com/huangsam/keepwatch/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyTableLimit caps the number of samples the text table shows per ASIN.
const historyTableLimit = 20

// PrintHistoryResults outputs the normalized history dumps, dispatching based on the output format configured.
func PrintHistoryResults(results []schema.HistoryResult, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForHistory(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForHistory(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForHistory(results, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printHistoryTable(results, cfg, duration); err != nil {
			return fmt.Errorf("error writing history table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForHistory handles opening the file and calling the JSON writer.
func printJSONResultsForHistory(results []schema.HistoryResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON history results")
}

// printCSVResultsForHistory handles opening the file and calling the CSV writer.
func printCSVResultsForHistory(results []schema.HistoryResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForHistory(csvWriter, results)
	}, "Wrote CSV history results")
}

// printParquetResultsForHistory writes rank and owner samples to Parquet files.
// An output file prefix is required since Parquet is not a stdout format.
func printParquetResultsForHistory(results []schema.HistoryResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}

	ranks, owners := parquet.ConvertHistoryResults(results)

	if len(ranks) > 0 {
		ranksFile := cfg.OutputFile + ".ranks.parquet"
		if err := parquet.WriteRankSamplesParquet(ranks, ranksFile); err != nil {
			return fmt.Errorf("failed to write rank samples: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d rank samples to %s\n", len(ranks), ranksFile)
	}

	if len(owners) > 0 {
		ownersFile := cfg.OutputFile + ".owners.parquet"
		if err := parquet.WriteOwnerSamplesParquet(owners, ownersFile); err != nil {
			return fmt.Errorf("failed to write owner samples: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d owner samples to %s\n", len(owners), ownersFile)
	}

	return nil
}

// printHistoryTable prints the tail of each history in a table.
func printHistoryTable(results []schema.HistoryResult, cfg *contract.Config, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"ASIN", "Kind", "Time", "Value"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows, keeping only the most recent samples per ASIN
	var data [][]string
	for _, res := range results {
		ranks := res.Ranks
		if len(ranks) > historyTableLimit {
			ranks = ranks[len(ranks)-historyTableLimit:]
		}
		for _, s := range ranks {
			data = append(data, []string{
				res.ASIN,
				string(res.Kind),
				s.Time.Format("2006-01-02 15:04"),
				fmt.Sprintf("%d", s.Value),
			})
		}

		owners := res.Owners
		if len(owners) > historyTableLimit {
			owners = owners[len(owners)-historyTableLimit:]
		}
		for _, s := range owners {
			data = append(data, []string{
				res.ASIN,
				string(res.Kind),
				s.Time.Format("2006-01-02 15:04"),
				s.SellerID,
			})
		}
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("History dump completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return nil
}
