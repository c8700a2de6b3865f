package core

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// LoadSnapshot fetches the records in scope from src and validates them into a snapshot.
// Only a failing source is an error; malformed records are dropped and counted.
func LoadSnapshot(ctx context.Context, src contract.RecordSource, f schema.FilterContext) (*schema.Snapshot, error) {
	ds, err := src.Load(ctx, contract.RecordQuery{StoreIDs: f.StoreIDs, From: f.From, To: f.To})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	if ds == nil {
		ds = &schema.Dataset{}
	}
	return ApplyFilter(ds, f), nil
}

// ApplyFilter scopes a raw dataset to the filter context. Records without a date,
// shifts with malformed or zero-length times and repeated (store, date) revenue records
// are dropped. The first revenue record seen for a (store, date) wins.
// The returned records are sorted so that identical inputs give identical outputs.
func ApplyFilter(ds *schema.Dataset, f schema.FilterContext) *schema.Snapshot {
	sc := newScope(f)
	snap := &schema.Snapshot{Filter: f}

	seen := make(map[string]struct{})
	for _, r := range ds.Revenue {
		if r.Date.IsZero() {
			snap.Dropped.MissingDate++
			continue
		}
		if !sc.includes(r.StoreID, r.Date) {
			continue
		}
		key := r.StoreID + "|" + schema.DayKey(r.Date)
		if _, dup := seen[key]; dup {
			snap.Dropped.Duplicate++
			continue
		}
		seen[key] = struct{}{}
		snap.Revenue = append(snap.Revenue, r)
	}

	for _, s := range ds.Shifts {
		if s.Date.IsZero() {
			snap.Dropped.MissingDate++
			continue
		}
		if !sc.includes(s.StoreID, s.Date) {
			continue
		}
		if _, err := bucket.Decompose(s.StartTime, s.EndTime); err != nil {
			snap.Dropped.MalformedTime++
			continue
		}
		if !sc.shiftType(s.ShiftType) {
			snap.Dropped.ShiftType++
			continue
		}
		snap.Shifts = append(snap.Shifts, s)
	}

	sort.SliceStable(snap.Revenue, func(i, j int) bool {
		a, b := snap.Revenue[i], snap.Revenue[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.StoreID < b.StoreID
	})
	sort.SliceStable(snap.Shifts, func(i, j int) bool {
		a, b := snap.Shifts[i], snap.Shifts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.StartTime < b.StartTime
	})
	return snap
}

// scope is the precomputed form of a FilterContext.
type scope struct {
	stores     map[string]struct{}
	from, to   string
	weekdays   map[string]struct{}
	shiftTypes []string
}

func newScope(f schema.FilterContext) scope {
	sc := scope{}
	if len(f.StoreIDs) > 0 {
		sc.stores = make(map[string]struct{}, len(f.StoreIDs))
		for _, id := range f.StoreIDs {
			sc.stores[id] = struct{}{}
		}
	}
	if !f.From.IsZero() {
		sc.from = schema.DayKey(f.From)
	}
	if !f.To.IsZero() {
		sc.to = schema.DayKey(f.To)
	}
	if len(f.Weekdays) > 0 {
		sc.weekdays = make(map[string]struct{}, len(f.Weekdays))
		for _, wd := range f.Weekdays {
			sc.weekdays[wd.String()] = struct{}{}
		}
	}
	for _, t := range f.ShiftTypes {
		sc.shiftTypes = append(sc.shiftTypes, strings.ToLower(strings.TrimSpace(t)))
	}
	return sc
}

// includes applies the store, date range and weekday filters.
func (sc scope) includes(storeID string, date time.Time) bool {
	if sc.stores != nil {
		if _, ok := sc.stores[storeID]; !ok {
			return false
		}
	}
	day := schema.DayKey(date)
	if sc.from != "" && day < sc.from {
		return false
	}
	if sc.to != "" && day > sc.to {
		return false
	}
	if sc.weekdays != nil {
		if _, ok := sc.weekdays[date.Weekday().String()]; !ok {
			return false
		}
	}
	return true
}

// shiftType applies the shift-type allow-list. An empty list admits every type.
func (sc scope) shiftType(t string) bool {
	if len(sc.shiftTypes) == 0 {
		return true
	}
	return slices.Contains(sc.shiftTypes, strings.ToLower(strings.TrimSpace(t)))
}
