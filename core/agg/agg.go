// Package agg has the accumulation logic that turns revenue and shift records into
// per-bucket averages.
package agg

import (
	"sort"
	"time"

	"github.com/huangsam/slotpulse/schema"
)

// Key identifies one accumulation cell: a group (weekday, store, or "" for everything)
// and a display slot label.
type Key struct {
	Group string
	Slot  string
}

// GroupFunc assigns a record to its accumulation group.
type GroupFunc func(storeID string, date time.Time) string

// AllRecords puts every record into a single group.
func AllRecords(string, time.Time) string { return "" }

// ByWeekday groups records by the weekday of their own calendar date.
func ByWeekday(_ string, date time.Time) string { return date.Weekday().String() }

// ByStore groups records by store.
func ByStore(storeID string, _ time.Time) string { return storeID }

// ByStoreMonth groups records by store and calendar month.
func ByStoreMonth(storeID string, date time.Time) string {
	return storeID + "|" + schema.MonthKey(date)
}

// ByDay groups records by calendar day.
func ByDay(_ string, date time.Time) string { return schema.DayKey(date) }

type daySet map[string]struct{}

// Accumulator sums values per key and tracks the distinct days that contributed to each key.
type Accumulator struct {
	sums map[Key]float64
	days map[Key]daySet
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		sums: make(map[Key]float64),
		days: make(map[Key]daySet),
	}
}

// Add adds v to key on the given calendar day. A zero v still marks the key as observed.
func (a *Accumulator) Add(key Key, day string, v float64) {
	a.sums[key] += v
	set, ok := a.days[key]
	if !ok {
		set = make(daySet)
		a.days[key] = set
	}
	set[day] = struct{}{}
}

// Has reports whether key received at least one contribution.
func (a *Accumulator) Has(key Key) bool {
	_, ok := a.days[key]
	return ok
}

// Sum returns the total accumulated for key.
func (a *Accumulator) Sum(key Key) float64 {
	return a.sums[key]
}

// Days returns the number of distinct days that contributed to key.
func (a *Accumulator) Days(key Key) int {
	return len(a.days[key])
}

// DayKeys returns the distinct days that contributed to key, ascending.
func (a *Accumulator) DayKeys(key Key) []string {
	return schema.SortedKeys(a.days[key])
}

// Keys returns every observed key ordered by group then slot.
func (a *Accumulator) Keys() []Key {
	keys := make([]Key, 0, len(a.days))
	for k := range a.days {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Slots returns the distinct slot labels observed in any group, ascending.
func (a *Accumulator) Slots() []string {
	seen := make(map[string]struct{})
	for k := range a.days {
		seen[k.Slot] = struct{}{}
	}
	return schema.SortedKeys(seen)
}

// SafeDiv divides and returns 0 when the denominator is not positive.
func SafeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Group != keys[j].Group {
			return keys[i].Group < keys[j].Group
		}
		return keys[i].Slot < keys[j].Slot
	})
}
