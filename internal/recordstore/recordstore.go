// Package recordstore provides the revenue and shift records the engine reads.
package recordstore

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// Open returns the record store configured for backend.
// The file backend reads file; every other backend connects with connStr.
func Open(backend schema.DatabaseBackend, connStr, file string) (contract.RecordStore, error) {
	switch backend {
	case schema.FileBackend:
		store, err := NewFileStore(file)
		if err != nil {
			return nil, err
		}
		return store, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewSQLStore(backend, connStr)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("record store %q: %w", backend, contract.ErrUnsupportedBackend)
	}
}

// OpenConfig opens the record store named by the run configuration.
func OpenConfig(cfg *contract.Config) (contract.RecordStore, error) {
	return Open(cfg.RecordsBackend, cfg.RecordsDBConnect, cfg.RecordsFile)
}

// PrintRecordStatus prints record store status information.
func PrintRecordStatus(status schema.RecordStoreStatus) {
	WriteRecordStatus(os.Stdout, status)
}

// WriteRecordStatus writes record store status information to w.
func WriteRecordStatus(w io.Writer, status schema.RecordStoreStatus) {
	_, _ = fmt.Fprintf(w, "Records Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.SchemaVersion > 0 {
		_, _ = fmt.Fprintf(w, "Schema Version: %d (dirty: %t)\n", status.SchemaVersion, status.Dirty)
	}
	_, _ = fmt.Fprintf(w, "Revenue Records: %d\n", status.RevenueRecords)
	_, _ = fmt.Fprintf(w, "Shift Records: %d\n", status.ShiftRecords)
	_, _ = fmt.Fprintf(w, "Stores: %s\n", strings.Join(status.Stores, ", "))
	if !status.FirstDate.IsZero() {
		_, _ = fmt.Fprintf(w, "Date Range: %s → %s\n", schema.DayKey(status.FirstDate), schema.DayKey(status.LastDate))
	}
	_, _ = fmt.Fprintf(w, "Dataset Version: %s\n", status.DatasetVersion)
	if len(status.TableSizes) > 0 {
		_, _ = fmt.Fprintln(w, "Table Sizes:")
		for _, table := range schema.SortedKeys(status.TableSizes) {
			_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
		}
	}
}
