package recordstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/sqldb"
	"github.com/huangsam/slotpulse/schema"
)

// Table names for the record store.
const (
	revenueTable = "revenue_records"
	slotsTable   = "revenue_slots"
	shiftsTable  = "shift_records"
)

// SQLStore keeps revenue and shift records in a relational database.
type SQLStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

var _ contract.RecordStore = &SQLStore{} // Compile-time check

// NewSQLStore migrates the database to the latest schema and opens the store.
func NewSQLStore(backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	if err := Migrate(io.Discard, backend, connStr, LatestVersion); err != nil {
		return nil, fmt.Errorf("failed to prepare record store: %w", err)
	}
	db, err := sqldb.Open(backend, connStr, contract.GetRecordsDBFilePath())
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, backend: backend, now: time.Now}, nil
}

// rebind adapts a ? query to the store's backend.
func (s *SQLStore) rebind(query string) string {
	return sqldb.Rebind(s.backend, query)
}

// where builds the store and date range predicate for one table.
func where(q contract.RecordQuery, dateColumn string) (string, []any) {
	var clauses []string
	var args []any
	if len(q.StoreIDs) > 0 {
		clauses = append(clauses, "store_id IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(q.StoreIDs)), ", ")+")")
		for _, id := range q.StoreIDs {
			args = append(args, id)
		}
	}
	if !q.From.IsZero() {
		clauses = append(clauses, dateColumn+" >= ?")
		args = append(args, schema.DayKey(q.From))
	}
	if !q.To.IsZero() {
		clauses = append(clauses, dateColumn+" <= ?")
		args = append(args, schema.DayKey(q.To))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Load returns the records matching the query.
func (s *SQLStore) Load(ctx context.Context, q contract.RecordQuery) (*schema.Dataset, error) {
	ds := &schema.Dataset{}

	revenue, err := s.loadRevenue(ctx, q)
	if err != nil {
		return nil, err
	}
	ds.Revenue = revenue

	shifts, err := s.loadShifts(ctx, q)
	if err != nil {
		return nil, err
	}
	ds.Shifts = shifts
	return ds, nil
}

func (s *SQLStore) loadRevenue(ctx context.Context, q contract.RecordQuery) ([]schema.RevenueRecord, error) {
	cond, args := where(q, "record_date")
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT store_id, record_date, total_revenue FROM "+revenueTable+cond+" ORDER BY record_date, store_id"), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.RevenueRecord
	index := make(map[string]int)
	for rows.Next() {
		var r schema.RevenueRecord
		var day string
		if err := rows.Scan(&r.StoreID, &day, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue record: %w", err)
		}
		r.Date = parseDay(day)
		r.Slots = make(map[string]float64)
		index[r.StoreID+"|"+day] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue records: %w", err)
	}

	slotRows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT store_id, record_date, slot_label, revenue FROM "+slotsTable+cond), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue slots: %w", err)
	}
	defer func() { _ = slotRows.Close() }()

	for slotRows.Next() {
		var storeID, day, label string
		var amount float64
		if err := slotRows.Scan(&storeID, &day, &label, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan revenue slot: %w", err)
		}
		if i, ok := index[storeID+"|"+day]; ok {
			out[i].Slots[label] = amount
		}
	}
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue slots: %w", err)
	}
	return out, nil
}

func (s *SQLStore) loadShifts(ctx context.Context, q contract.RecordQuery) ([]schema.ShiftRecord, error) {
	cond, args := where(q, "shift_date")
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT store_id, employee_id, shift_date, start_time, end_time, shift_type FROM "+shiftsTable+cond+
			" ORDER BY shift_date, store_id, employee_id, start_time"), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ShiftRecord
	for rows.Next() {
		var r schema.ShiftRecord
		var day string
		if err := rows.Scan(&r.StoreID, &r.EmployeeID, &day, &r.StartTime, &r.EndTime, &r.ShiftType); err != nil {
			return nil, fmt.Errorf("failed to scan shift record: %w", err)
		}
		r.Date = parseDay(day)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift records: %w", err)
	}
	return out, nil
}

// Stores lists every store with revenue or shift records.
func (s *SQLStore) Stores(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT store_id FROM "+revenueTable+" UNION SELECT store_id FROM "+shiftsTable+" ORDER BY store_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DatasetVersion hashes row counts and the latest write time of every table.
func (s *SQLStore) DatasetVersion(ctx context.Context) (string, error) {
	var revCount, slotCount, shiftCount int64
	var revUpdated, shiftUpdated int64

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(MAX(updated_at), 0) FROM "+revenueTable)
	if err := row.Scan(&revCount, &revUpdated); err != nil {
		return "", fmt.Errorf("failed to read revenue version: %w", err)
	}
	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+slotsTable)
	if err := row.Scan(&slotCount); err != nil {
		return "", fmt.Errorf("failed to read slot version: %w", err)
	}
	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(MAX(updated_at), 0) FROM "+shiftsTable)
	if err := row.Scan(&shiftCount, &shiftUpdated); err != nil {
		return "", fmt.Errorf("failed to read shift version: %w", err)
	}

	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d:%d:%d:%d",
		s.backend, revCount, revUpdated, slotCount, shiftCount, shiftUpdated))
	return hex.EncodeToString(sum[:]), nil
}

// Import writes the dataset in one transaction. Revenue records replace the
// stored record of the same store and day; shifts replace the stored shift of the
// same employee, store, day and start time.
func (s *SQLStore) Import(ctx context.Context, ds *schema.Dataset) (schema.ImportResult, error) {
	var res schema.ImportResult
	if ds == nil {
		return res, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stamp := s.now().UnixMilli()
	for _, r := range ds.Revenue {
		if r.StoreID == "" || r.Date.IsZero() {
			res.Skipped++
			continue
		}
		if err := s.importRevenue(ctx, tx, r, stamp); err != nil {
			return schema.ImportResult{}, err
		}
		res.Revenue++
	}
	for _, r := range ds.Shifts {
		if r.StoreID == "" || r.Date.IsZero() {
			res.Skipped++
			continue
		}
		if err := s.importShift(ctx, tx, r, stamp); err != nil {
			return schema.ImportResult{}, err
		}
		res.Shifts++
	}

	if err := tx.Commit(); err != nil {
		return schema.ImportResult{}, fmt.Errorf("failed to commit import: %w", err)
	}
	return res, nil
}

func (s *SQLStore) importRevenue(ctx context.Context, tx *sql.Tx, r schema.RevenueRecord, stamp int64) error {
	day := schema.DayKey(r.Date)
	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+revenueTable+" WHERE store_id = ? AND record_date = ?"), r.StoreID, day); err != nil {
		return fmt.Errorf("failed to replace revenue record %s/%s: %w", r.StoreID, day, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+slotsTable+" WHERE store_id = ? AND record_date = ?"), r.StoreID, day); err != nil {
		return fmt.Errorf("failed to replace revenue slots %s/%s: %w", r.StoreID, day, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(
		"INSERT INTO "+revenueTable+" (store_id, record_date, total_revenue, updated_at) VALUES (?, ?, ?, ?)"),
		r.StoreID, day, r.TotalRevenue, stamp); err != nil {
		return fmt.Errorf("failed to insert revenue record %s/%s: %w", r.StoreID, day, err)
	}

	insertSlot := s.rebind("INSERT INTO " + slotsTable + " (store_id, record_date, slot_label, revenue) VALUES (?, ?, ?, ?)")
	for _, label := range schema.SortedKeys(r.Slots) {
		if _, err := tx.ExecContext(ctx, insertSlot, r.StoreID, day, label, r.Slots[label]); err != nil {
			return fmt.Errorf("failed to insert revenue slot %s/%s/%s: %w", r.StoreID, day, label, err)
		}
	}
	return nil
}

func (s *SQLStore) importShift(ctx context.Context, tx *sql.Tx, r schema.ShiftRecord, stamp int64) error {
	day := schema.DayKey(r.Date)
	if _, err := tx.ExecContext(ctx, s.rebind(
		"DELETE FROM "+shiftsTable+" WHERE store_id = ? AND employee_id = ? AND shift_date = ? AND start_time = ?"),
		r.StoreID, r.EmployeeID, day, r.StartTime); err != nil {
		return fmt.Errorf("failed to replace shift %s/%s/%s: %w", r.StoreID, r.EmployeeID, day, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(
		"INSERT INTO "+shiftsTable+" (store_id, employee_id, shift_date, start_time, end_time, shift_type, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		r.StoreID, r.EmployeeID, day, r.StartTime, r.EndTime, r.ShiftType, stamp); err != nil {
		return fmt.Errorf("failed to insert shift %s/%s/%s: %w", r.StoreID, r.EmployeeID, day, err)
	}
	return nil
}

// Status reports record counts, the covered date range and the schema version.
func (s *SQLStore) Status(ctx context.Context) (schema.RecordStoreStatus, error) {
	status := schema.RecordStoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	row := s.db.QueryRowContext(ctx, "SELECT version, dirty FROM schema_migrations LIMIT 1")
	if err := row.Scan(&status.SchemaVersion, &status.Dirty); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return status, fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, table := range []string{revenueTable, slotsTable, shiftsTable} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", table, err)
		}
		status.TableSizes[table] = int64(n)
		switch table {
		case revenueTable:
			status.RevenueRecords = n
		case shiftsTable:
			status.ShiftRecords = n
		}
	}

	stores, err := s.Stores(ctx)
	if err != nil {
		return status, err
	}
	status.Stores = stores

	var first, last sql.NullString
	row = s.db.QueryRowContext(ctx, "SELECT MIN(d), MAX(d) FROM (SELECT record_date AS d FROM "+revenueTable+
		" UNION ALL SELECT shift_date AS d FROM "+shiftsTable+") dates")
	if err := row.Scan(&first, &last); err != nil {
		return status, fmt.Errorf("failed to read date range: %w", err)
	}
	status.FirstDate = parseDay(first.String)
	status.LastDate = parseDay(last.String)

	version, err := s.DatasetVersion(ctx)
	if err != nil {
		return status, err
	}
	status.DatasetVersion = version
	return status, nil
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseDay reads a stored YYYY-MM-DD day. Unparsable values yield the zero time,
// which the engine counts as a missing date.
func parseDay(s string) time.Time {
	t, err := time.Parse(schema.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
