// Package contract provides interfaces and shared utilities for slotpulse's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/slotpulse/schema"
)

// ErrUnsupportedBackend is returned when a store is asked to use a backend it cannot serve.
var ErrUnsupportedBackend = errors.New("unsupported backend")

// RecordQuery narrows the records a RecordSource returns.
// Zero From or To leaves that side of the range open.
type RecordQuery struct {
	StoreIDs []string
	From     time.Time
	To       time.Time
}

// RecordSource defines the read-only access the engine needs to revenue and shift records.
// This allows the aggregation pipeline to be tested without a real database or file.
type RecordSource interface {
	// Load returns the raw records for the query, unvalidated and in any order.
	Load(ctx context.Context, q RecordQuery) (*schema.Dataset, error)

	// Stores lists every store ID known to the source, ascending.
	Stores(ctx context.Context) ([]string, error)

	// DatasetVersion returns a string that changes whenever the underlying records change.
	DatasetVersion(ctx context.Context) (string, error)

	// Close releases the underlying connection or file handle.
	Close() error
}

// RecordStore is a RecordSource that can also be written to and inspected.
type RecordStore interface {
	RecordSource

	// Import writes a dataset into the store, replacing records with the same identity.
	Import(ctx context.Context, ds *schema.Dataset) (schema.ImportResult, error)

	// Status reports the size and range of the stored records.
	Status(ctx context.Context) (schema.RecordStoreStatus, error)
}
