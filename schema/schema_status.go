package schema

import "time"

// CacheStatus represents the status of the product response cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis tracking store.
type AnalysisStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalRuns          int              `json:"total_runs"`
	LastRunID          int64            `json:"last_run_id"`
	LastRunTime        time.Time        `json:"last_run_time"`
	OldestRunTime      time.Time        `json:"oldest_run_time"`
	TotalASINsAnalyzed int              `json:"total_asins_analyzed"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the keepwatch_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalASINsAnalyzed *int32
	ConfigParams       *string
}

// RankReportRecord represents a row from the keepwatch_rank_reports table.
type RankReportRecord struct {
	AnalysisID   int64
	ASIN         string
	AnalysisTime time.Time
	CategoryID   string
	CategoryName string
	Score        float64
	Days         int32
	DataPoints   int32
	RankChanges  int32
	AverageRank  *float64
	MinRank      *int32
	MaxRank      *int32
}

// OwnershipRow represents a row from the keepwatch_ownership_records table.
type OwnershipRow struct {
	AnalysisID   int64
	ASIN         string
	AnalysisTime time.Time
	Year         int32
	Month        int32
	SellerID     string
	SampledDays  int32
	OwnedDays    int32
	DayShare     *float64
	CountShare   *float64
	TimeShare    *float64
}
