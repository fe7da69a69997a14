package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/keepwatch/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total rank reports: %d\n", status.TableSizes[rankReportsTable])
	fmt.Printf("Total ownership records: %d\n", status.TableSizes[ownershipRecordsTable])

	// Retrieve all analysis runs
	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all rank reports
	rankReports, err := store.GetAllRankReports()
	if err != nil {
		return fmt.Errorf("failed to retrieve rank reports: %w", err)
	}

	// Retrieve all ownership records
	ownershipRecords, err := store.GetAllOwnershipRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve ownership records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetRanks := parquet.ConvertRankReportRecords(rankReports)
	parquetOwnership := parquet.ConvertOwnershipRows(ownershipRecords)

	// Write analysis runs to Parquet
	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), analysisRunsFile)

	// Write rank reports to Parquet
	rankReportsFile := outputFile + ".rank_reports.parquet"
	if err := parquet.WriteRankReportsParquet(parquetRanks, rankReportsFile); err != nil {
		return fmt.Errorf("failed to write rank reports: %w", err)
	}
	fmt.Printf("Exported %d rank reports to: %s\n", len(parquetRanks), rankReportsFile)

	// Write ownership records to Parquet
	ownershipFile := outputFile + ".ownership_records.parquet"
	if err := parquet.WriteOwnershipRecordsParquet(parquetOwnership, ownershipFile); err != nil {
		return fmt.Errorf("failed to write ownership records: %w", err)
	}
	fmt.Printf("Exported %d ownership records to: %s\n", len(parquetOwnership), ownershipFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
