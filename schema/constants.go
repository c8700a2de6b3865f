package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for records and caching.
	DatabaseBackend string

	// InsightKind represents the category of a staffing insight.
	InsightKind string

	// Band represents a coarse productivity band used for labels.
	Band string
)

// Granularity is the width of a display bucket in minutes.
type Granularity int

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	FileBackend       DatabaseBackend = "file" // records only
	NoneBackend       DatabaseBackend = "none" // cache only
)

// Supported granularities.
const (
	HalfHour Granularity = 30 // default, also the internal step
	Hour     Granularity = 60
)

// All insight kinds supported.
const (
	LowProductivity  InsightKind = "low_productivity"
	HighProductivity InsightKind = "high_productivity"
	CrossStoreGap    InsightKind = "cross_store_gap"
)

// Productivity bands.
const (
	LowBand    Band = "Low"
	NormalBand Band = "Normal"
	HighBand   Band = "High"
	EmptyBand  Band = "-"
)

// DateFormat is the canonical calendar day layout for records.
const DateFormat = "2006-01-02"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRecordBackends lists all valid record store backends.
var ValidRecordBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	FileBackend:       {},
}

// ValidGranularities lists all valid display granularities.
var ValidGranularities = map[Granularity]struct{}{
	HalfHour: {},
	Hour:     {},
}

// WeekOrder is the Monday-first display order of weekdays.
var WeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
