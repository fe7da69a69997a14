package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteTableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table)
	require.NoError(t, row.Scan(&count))
	return count > 0
}

func TestMigrateAnalysisSQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, sqliteTableExists(t, dbPath, analysisRunsTable))
	assert.True(t, sqliteTableExists(t, dbPath, rankReportsTable))
	assert.True(t, sqliteTableExists(t, dbPath, ownershipRecordsTable))

	// Running again is a no-op.
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, sqliteTableExists(t, dbPath, analysisRunsTable))
	assert.False(t, sqliteTableExists(t, dbPath, rankReportsTable))
	assert.False(t, sqliteTableExists(t, dbPath, ownershipRecordsTable))
}

func TestMigrateAnalysisSQLiteSpecificVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, sqliteTableExists(t, dbPath, analysisRunsTable))
}

func TestMigrateAnalysisRejectsBadBackend(t *testing.T) {
	assert.ErrorContains(t, MigrateAnalysis(schema.NoneBackend, "", -1), "not supported")
	assert.ErrorContains(t, MigrateAnalysis(schema.DatabaseBackend("redis"), "", -1), "unsupported backend")
}
