package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// HistoryKind represents which history a command operates on.
	HistoryKind string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history kinds supported.
const (
	RankHistory   HistoryKind = "rank" // default
	BuyboxHistory HistoryKind = "buybox"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AmazonSellerID is the seller ID Amazon retail uses on the US marketplace.
const AmazonSellerID = "ATVPDKIKX0DER"

// RankSentinel marks "no observation" in raw rank history; pairs carrying it
// are dropped during normalization.
const RankSentinel = -1

// Seller IDs that mark "no buybox offer" rather than a real holder.
const (
	NoBuyboxSellerID       = "-1"
	SuppressedBuyboxSeller = "-2"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidHistoryKinds lists all valid history kinds.
var ValidHistoryKinds = map[HistoryKind]struct{}{
	RankHistory:   {},
	BuyboxHistory: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
