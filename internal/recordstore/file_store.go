package recordstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// File names of a CSV record directory.
const (
	RevenueCSV = "revenue.csv"
	ShiftsCSV  = "shifts.csv"
)

// FileStore serves records parsed once from a JSON dataset or a directory holding a CSV pair.
type FileStore struct {
	path    string
	dataset *schema.Dataset
	version string
}

var _ contract.RecordStore = &FileStore{} // Compile-time check

// NewFileStore reads and parses the records at path.
// A directory must hold revenue.csv and shifts.csv; anything else is read as JSON.
func NewFileStore(path string) (*FileStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}

	var ds *schema.Dataset
	var raw []byte
	if info.IsDir() {
		ds, raw, err = readCSVDir(path)
	} else {
		raw, err = os.ReadFile(path)
		if err == nil {
			ds, err = ParseJSON(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", path, err)
	}

	sum := sha256.Sum256(raw)
	return &FileStore{path: path, dataset: ds, version: hex.EncodeToString(sum[:])}, nil
}

// Load returns the records matching the query. Records without a date are kept
// so the engine can count them.
func (f *FileStore) Load(_ context.Context, q contract.RecordQuery) (*schema.Dataset, error) {
	match := func(storeID string, date time.Time) bool {
		if len(q.StoreIDs) > 0 && !slices.Contains(q.StoreIDs, storeID) {
			return false
		}
		if date.IsZero() {
			return true
		}
		if !q.From.IsZero() && schema.DayKey(date) < schema.DayKey(q.From) {
			return false
		}
		return q.To.IsZero() || schema.DayKey(date) <= schema.DayKey(q.To)
	}

	out := &schema.Dataset{}
	for _, r := range f.dataset.Revenue {
		if match(r.StoreID, r.Date) {
			out.Revenue = append(out.Revenue, r)
		}
	}
	for _, r := range f.dataset.Shifts {
		if match(r.StoreID, r.Date) {
			out.Shifts = append(out.Shifts, r)
		}
	}
	return out, nil
}

// Stores lists every store in the file.
func (f *FileStore) Stores(context.Context) ([]string, error) {
	return datasetStores(f.dataset), nil
}

// DatasetVersion is the sha256 of the file contents.
func (f *FileStore) DatasetVersion(context.Context) (string, error) {
	return f.version, nil
}

// Import is not supported; record files are read-only.
func (f *FileStore) Import(context.Context, *schema.Dataset) (schema.ImportResult, error) {
	return schema.ImportResult{}, fmt.Errorf("cannot import into records file %s: %w", f.path, contract.ErrUnsupportedBackend)
}

// Status reports the size and range of the file's records.
func (f *FileStore) Status(context.Context) (schema.RecordStoreStatus, error) {
	status := schema.RecordStoreStatus{
		Backend:        string(schema.FileBackend),
		Connected:      true,
		RevenueRecords: len(f.dataset.Revenue),
		ShiftRecords:   len(f.dataset.Shifts),
		Stores:         datasetStores(f.dataset),
		DatasetVersion: f.version,
	}
	visit := func(d time.Time) {
		if d.IsZero() {
			return
		}
		if status.FirstDate.IsZero() || d.Before(status.FirstDate) {
			status.FirstDate = d
		}
		if d.After(status.LastDate) {
			status.LastDate = d
		}
	}
	for _, r := range f.dataset.Revenue {
		visit(r.Date)
	}
	for _, r := range f.dataset.Shifts {
		visit(r.Date)
	}
	return status, nil
}

// Close is a no-op; the file is read fully on open.
func (f *FileStore) Close() error {
	return nil
}

func datasetStores(ds *schema.Dataset) []string {
	seen := make(map[string]struct{})
	for _, r := range ds.Revenue {
		seen[r.StoreID] = struct{}{}
	}
	for _, r := range ds.Shifts {
		seen[r.StoreID] = struct{}{}
	}
	delete(seen, "")
	return schema.SortedKeys(seen)
}

// jsonDataset mirrors schema.Dataset with plain string days.
type jsonDataset struct {
	Revenue []struct {
		StoreID      string             `json:"store_id"`
		Date         string             `json:"date"`
		Slots        map[string]float64 `json:"slots"`
		TotalRevenue float64            `json:"total_revenue"`
	} `json:"revenue"`
	Shifts []struct {
		StoreID    string `json:"store_id"`
		EmployeeID string `json:"employee_id"`
		Date       string `json:"date"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		ShiftType  string `json:"shift_type"`
	} `json:"shifts"`
}

// ParseJSON decodes a {"revenue": [...], "shifts": [...]} document.
// Days use the YYYY-MM-DD layout; a missing or unreadable day becomes the zero time.
func ParseJSON(data []byte) (*schema.Dataset, error) {
	var raw jsonDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid records JSON: %w", err)
	}

	ds := &schema.Dataset{}
	for _, r := range raw.Revenue {
		slots := r.Slots
		if slots == nil {
			slots = map[string]float64{}
		}
		ds.Revenue = append(ds.Revenue, schema.RevenueRecord{
			StoreID:      r.StoreID,
			Date:         parseDay(r.Date),
			Slots:        slots,
			TotalRevenue: r.TotalRevenue,
		})
	}
	for _, r := range raw.Shifts {
		ds.Shifts = append(ds.Shifts, schema.ShiftRecord{
			StoreID:    r.StoreID,
			EmployeeID: r.EmployeeID,
			Date:       parseDay(r.Date),
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			ShiftType:  r.ShiftType,
		})
	}
	return ds, nil
}

// readCSVDir parses the CSV pair in dir and returns the concatenated raw bytes for versioning.
func readCSVDir(dir string) (*schema.Dataset, []byte, error) {
	revenueRaw, err := os.ReadFile(filepath.Join(dir, RevenueCSV))
	if err != nil {
		return nil, nil, err
	}
	shiftsRaw, err := os.ReadFile(filepath.Join(dir, ShiftsCSV))
	if err != nil {
		return nil, nil, err
	}

	revenue, err := ParseRevenueCSV(bytes.NewReader(revenueRaw))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", RevenueCSV, err)
	}
	shifts, err := ParseShiftsCSV(bytes.NewReader(shiftsRaw))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ShiftsCSV, err)
	}

	raw := append(append(revenueRaw, 0), shiftsRaw...)
	return &schema.Dataset{Revenue: revenue, Shifts: shifts}, raw, nil
}

// csvTable reads a CSV document with a header row and gives access to cells by column name.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("missing header row")
	}

	t := &csvTable{columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return t, nil
}

func (t *csvTable) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) float(row []string, column string, line int) (float64, error) {
	v := t.get(row, column)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid %s %q", line, column, v)
	}
	return f, nil
}

// ParseRevenueCSV reads long-format revenue rows (store_id, date, slot, revenue, total_revenue)
// and folds them into one record per store and day. A row with an empty slot only carries the total.
func ParseRevenueCSV(r io.Reader) ([]schema.RevenueRecord, error) {
	t, err := readCSV(r, "store_id", "date", "slot", "revenue")
	if err != nil {
		return nil, err
	}

	var out []schema.RevenueRecord
	index := make(map[string]int)
	for i, row := range t.rows {
		line := i + 2
		amount, err := t.float(row, "revenue", line)
		if err != nil {
			return nil, err
		}
		total, err := t.float(row, "total_revenue", line)
		if err != nil {
			return nil, err
		}

		storeID, day := t.get(row, "store_id"), t.get(row, "date")
		key := storeID + "|" + day
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, schema.RevenueRecord{
				StoreID: storeID,
				Date:    parseDay(day),
				Slots:   map[string]float64{},
			})
		}
		if slot := t.get(row, "slot"); slot != "" {
			out[pos].Slots[slot] += amount
		}
		if total > 0 && out[pos].TotalRevenue == 0 {
			out[pos].TotalRevenue = total
		}
	}
	return out, nil
}

// ParseShiftsCSV reads shift rows (store_id, employee_id, date, start_time, end_time, shift_type).
func ParseShiftsCSV(r io.Reader) ([]schema.ShiftRecord, error) {
	t, err := readCSV(r, "store_id", "employee_id", "date", "start_time", "end_time")
	if err != nil {
		return nil, err
	}

	out := make([]schema.ShiftRecord, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, schema.ShiftRecord{
			StoreID:    t.get(row, "store_id"),
			EmployeeID: t.get(row, "employee_id"),
			Date:       parseDay(t.get(row, "date")),
			StartTime:  t.get(row, "start_time"),
			EndTime:    t.get(row, "end_time"),
			ShiftType:  t.get(row, "shift_type"),
		})
	}
	return out, nil
}
