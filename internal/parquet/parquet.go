// Package parquet provides data structures and functions for exporting keepwatch
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/keepwatch/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single keepwatch analysis run with metadata.
// This struct maps to the keepwatch_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalASINsAnalyzed is the number of ASINs analyzed in this run (nullable)
	TotalASINsAnalyzed *int32 `parquet:"total_asins_analyzed,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RankReport represents the sales rank summary for one ASIN in an analysis.
// This struct maps to the keepwatch_rank_reports database table.
type RankReport struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// ASIN is the Amazon product identifier
	ASIN string `parquet:"asin,snappy"`

	// AnalysisTime is when this ASIN was analyzed
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// CategoryID is the chosen ranking category
	CategoryID string `parquet:"category_id,snappy"`

	// CategoryName is the display name of the chosen category
	CategoryName string `parquet:"category_name,snappy"`

	// Score is the density score of the chosen category
	Score float64 `parquet:"score,snappy"`

	// Days is the analysis window length in days
	Days int32 `parquet:"days,snappy"`

	// DataPoints is the number of samples inside the window
	DataPoints int32 `parquet:"data_points,snappy"`

	// RankChanges is the number of adjacent sample pairs with differing ranks
	RankChanges int32 `parquet:"rank_changes,snappy"`

	// AverageRank is the mean rank in the window (nullable)
	AverageRank *float64 `parquet:"average_rank,optional,snappy"`

	// MinRank is the best rank in the window (nullable)
	MinRank *int32 `parquet:"min_rank,optional,snappy"`

	// MaxRank is the worst rank in the window (nullable)
	MaxRank *int32 `parquet:"max_rank,optional,snappy"`
}

// OwnershipRecord represents a monthly buybox ownership summary for one ASIN.
// This struct maps to the keepwatch_ownership_records database table.
type OwnershipRecord struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// ASIN is the Amazon product identifier
	ASIN string `parquet:"asin,snappy"`

	// AnalysisTime is when this ASIN was analyzed
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// Year is the calendar year of the period
	Year int32 `parquet:"year,snappy"`

	// Month is the calendar month of the period (1-12)
	Month int32 `parquet:"month,snappy"`

	// SellerID is the seller whose share was measured
	SellerID string `parquet:"seller_id,snappy"`

	// SampledDays is the number of distinct days with at least one sample
	SampledDays int32 `parquet:"sampled_days,snappy"`

	// OwnedDays is the number of days the seller held the buybox
	OwnedDays int32 `parquet:"owned_days,snappy"`

	// DayShare is the day-based ownership percentage (nullable)
	DayShare *float64 `parquet:"day_share,optional,snappy"`

	// CountShare is the raw-sample ownership percentage (nullable)
	CountShare *float64 `parquet:"count_share,optional,snappy"`

	// TimeShare is the time-weighted ownership percentage (nullable)
	TimeShare *float64 `parquet:"time_share,optional,snappy"`
}

// RankSample is one normalized sales rank observation for history dumps.
type RankSample struct {
	// ASIN is the Amazon product identifier
	ASIN string `parquet:"asin,snappy"`

	// CategoryID is the ranking category the sample belongs to
	CategoryID string `parquet:"category_id,snappy"`

	// Time is when the rank was observed
	Time time.Time `parquet:"time,snappy"`

	// Rank is the observed sales rank
	Rank int32 `parquet:"rank,snappy"`
}

// OwnerSample is one buybox holder observation for history dumps.
type OwnerSample struct {
	// ASIN is the Amazon product identifier
	ASIN string `parquet:"asin,snappy"`

	// Time is when the holder was observed
	Time time.Time `parquet:"time,snappy"`

	// SellerID is the buybox holder at that instant
	SellerID string `parquet:"seller_id,snappy"`
}

// writeParquet writes records of any supported type to a Parquet file.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankReportsParquet writes a slice of RankReport structs to a Parquet file.
func WriteRankReportsParquet(data []RankReport, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteOwnershipRecordsParquet writes a slice of OwnershipRecord structs to a Parquet file.
func WriteOwnershipRecordsParquet(data []OwnershipRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankSamplesParquet writes a slice of RankSample structs to a Parquet file.
func WriteRankSamplesParquet(data []RankSample, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteOwnerSamplesParquet writes a slice of OwnerSample structs to a Parquet file.
func WriteOwnerSamplesParquet(data []OwnerSample, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:         record.AnalysisID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalASINsAnalyzed: record.TotalASINsAnalyzed,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertRankReportRecords converts schema.RankReportRecord to RankReport for Parquet export.
func ConvertRankReportRecords(records []schema.RankReportRecord) []RankReport {
	result := make([]RankReport, len(records))
	for i, record := range records {
		result[i] = RankReport{
			AnalysisID:   record.AnalysisID,
			ASIN:         record.ASIN,
			AnalysisTime: record.AnalysisTime,
			CategoryID:   record.CategoryID,
			CategoryName: record.CategoryName,
			Score:        record.Score,
			Days:         record.Days,
			DataPoints:   record.DataPoints,
			RankChanges:  record.RankChanges,
			AverageRank:  record.AverageRank,
			MinRank:      record.MinRank,
			MaxRank:      record.MaxRank,
		}
	}
	return result
}

// ConvertOwnershipRows converts schema.OwnershipRow to OwnershipRecord for Parquet export.
func ConvertOwnershipRows(records []schema.OwnershipRow) []OwnershipRecord {
	result := make([]OwnershipRecord, len(records))
	for i, record := range records {
		result[i] = OwnershipRecord{
			AnalysisID:   record.AnalysisID,
			ASIN:         record.ASIN,
			AnalysisTime: record.AnalysisTime,
			Year:         record.Year,
			Month:        record.Month,
			SellerID:     record.SellerID,
			SampledDays:  record.SampledDays,
			OwnedDays:    record.OwnedDays,
			DayShare:     record.DayShare,
			CountShare:   record.CountShare,
			TimeShare:    record.TimeShare,
		}
	}
	return result
}

// ConvertHistoryResults flattens normalized history dumps into Parquet rows.
func ConvertHistoryResults(results []schema.HistoryResult) ([]RankSample, []OwnerSample) {
	var ranks []RankSample
	var owners []OwnerSample
	for _, res := range results {
		for _, s := range res.Ranks {
			ranks = append(ranks, RankSample{
				ASIN:       res.ASIN,
				CategoryID: res.CategoryID,
				Time:       s.Time,
				Rank:       int32(s.Value),
			})
		}
		for _, s := range res.Owners {
			owners = append(owners, OwnerSample{
				ASIN:     res.ASIN,
				Time:     s.Time,
				SellerID: s.SellerID,
			})
		}
	}
	return ranks, owners
}
