package schema

import "time"

// CacheStatus represents the status of the result cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RecordStoreStatus represents the status of the revenue and shift record store.
type RecordStoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	SchemaVersion  int              `json:"schema_version"`
	Dirty          bool             `json:"dirty"`
	RevenueRecords int              `json:"revenue_records"`
	ShiftRecords   int              `json:"shift_records"`
	Stores         []string         `json:"stores"`
	FirstDate      time.Time        `json:"first_date"`
	LastDate       time.Time        `json:"last_date"`
	DatasetVersion string           `json:"dataset_version"`
	TableSizes     map[string]int64 `json:"table_sizes,omitempty"` // Rows per table
}

// ImportResult counts the records written by one import.
type ImportResult struct {
	Revenue int `json:"revenue"`
	Shifts  int `json:"shifts"`
	Skipped int `json:"skipped"` // Records without a store or a date
}
