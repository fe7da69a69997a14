package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*AnalysisStoreImpl)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sampleRankReport(asin string) schema.RankReport {
	return schema.RankReport{
		ASIN:         asin,
		Title:        "Cordless Drill",
		CategoryID:   "1000",
		CategoryName: "Electronics",
		Score:        45.45,
		Days:         30,
		Stats: schema.WindowStats{
			Count:       500,
			Average:     floatPtr(10.0),
			Min:         intPtr(5),
			Max:         intPtr(20),
			ChangeCount: 42,
		},
	}
}

func TestAnalysisStoreRunLifecycle(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	start := time.Now().UTC()
	id, err := store.BeginAnalysis(start, map[string]any{"days": 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, store.RecordRankReport(id, sampleRankReport("B0ABCD1234")))
	require.NoError(t, store.EndAnalysis(id, start.Add(2*time.Second), 1))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].AnalysisID)
	assert.WithinDuration(t, start, runs[0].StartTime, time.Millisecond)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(2000), *runs[0].RunDurationMs)
	require.NotNil(t, runs[0].TotalASINsAnalyzed)
	assert.Equal(t, int32(1), *runs[0].TotalASINsAnalyzed)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, `"days":30`)
}

func TestAnalysisStoreRankReports(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	id, err := store.BeginAnalysis(time.Now().UTC(), nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordRankReport(id, sampleRankReport("B0ABCD1234")))
	require.NoError(t, store.RecordRankReport(id, sampleRankReport("B0EFGH5678")))

	reports, err := store.GetAllRankReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)

	first := reports[0]
	assert.Equal(t, "B0ABCD1234", first.ASIN)
	assert.Equal(t, "1000", first.CategoryID)
	assert.Equal(t, "Electronics", first.CategoryName)
	assert.InDelta(t, 45.45, first.Score, 0.001)
	assert.Equal(t, int32(500), first.DataPoints)
	assert.Equal(t, int32(42), first.RankChanges)
	require.NotNil(t, first.AverageRank)
	assert.InDelta(t, 10.0, *first.AverageRank, 0.001)
	require.NotNil(t, first.MinRank)
	assert.Equal(t, int32(5), *first.MinRank)
}

func TestAnalysisStoreRankReportNullStats(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	id, err := store.BeginAnalysis(time.Now().UTC(), nil)
	require.NoError(t, err)

	report := sampleRankReport("B0ABCD1234")
	report.Stats = schema.WindowStats{} // empty window
	require.NoError(t, store.RecordRankReport(id, report))

	reports, err := store.GetAllRankReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].AverageRank)
	assert.Nil(t, reports[0].MinRank)
	assert.Nil(t, reports[0].MaxRank)
}

func TestAnalysisStoreOwnershipRecords(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	id, err := store.BeginAnalysis(time.Now().UTC(), nil)
	require.NoError(t, err)

	rec := schema.OwnershipRecord{
		ASIN:        "B0ABCD1234",
		Year:        2024,
		Month:       6,
		SellerID:    schema.AmazonSellerID,
		SampledDays: 30,
		OwnedDays:   18,
		DayShare:    floatPtr(60.0),
		CountShare:  floatPtr(55.5),
		TimeShare:   nil,
	}
	require.NoError(t, store.RecordOwnership(id, rec))

	rows, err := store.GetAllOwnershipRecords()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, id, got.AnalysisID)
	assert.Equal(t, int32(2024), got.Year)
	assert.Equal(t, int32(6), got.Month)
	assert.Equal(t, schema.AmazonSellerID, got.SellerID)
	assert.Equal(t, int32(18), got.OwnedDays)
	require.NotNil(t, got.DayShare)
	assert.InDelta(t, 60.0, *got.DayShare, 0.001)
	assert.Nil(t, got.TimeShare)
}

func TestAnalysisStoreStatus(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	start := time.Now().UTC()
	id, err := store.BeginAnalysis(start, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordRankReport(id, sampleRankReport("B0ABCD1234")))
	require.NoError(t, store.EndAnalysis(id, start.Add(time.Second), 3))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, id, status.LastRunID)
	assert.WithinDuration(t, start, status.LastRunTime, time.Millisecond)
	assert.Equal(t, 3, status.TotalASINsAnalyzed)
	assert.Equal(t, int64(1), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[rankReportsTable])
	assert.Equal(t, int64(0), status.TableSizes[ownershipRecordsTable])
}

func TestAnalysisStoreNoneBackendIsNoop(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginAnalysis(time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, id)

	assert.NoError(t, store.RecordRankReport(id, sampleRankReport("B0ABCD1234")))
	assert.NoError(t, store.RecordOwnership(id, schema.OwnershipRecord{}))
	assert.NoError(t, store.EndAnalysis(id, time.Now(), 0))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestNewAnalysisStoreUnsupportedBackend(t *testing.T) {
	_, err := NewAnalysisStore(schema.DatabaseBackend("redis"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}
