package agg

import (
	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

// HoursTable is the labor accumulated per display bucket.
// Averages divide by the days on which the bucket was staffed at all.
type HoursTable struct {
	*Accumulator
	Skipped int // Shifts whose times could not be decomposed
}

// Average returns the average staffed hours of key over the days it was staffed.
func (h *HoursTable) Average(key Key) float64 {
	return SafeDiv(h.Sum(key), float64(h.Days(key)))
}

// AggregateHours decomposes every shift into half-hour steps and accumulates 0.5h per
// step into the display bucket of that step. Both halves of an hourly bucket feed the
// same key, so hourly averages are sums over the union of their staffed days.
// Overnight steps stay attributed to the shift's own date.
func AggregateHours(shifts []schema.ShiftRecord, g schema.Granularity, group GroupFunc) *HoursTable {
	table := &HoursTable{Accumulator: NewAccumulator()}
	for _, s := range shifts {
		steps, err := bucket.Decompose(s.StartTime, s.EndTime)
		if err != nil {
			table.Skipped++
			continue
		}
		day := schema.DayKey(s.Date)
		grp := group(s.StoreID, s.Date)
		for _, m := range steps {
			table.Add(Key{Group: grp, Slot: bucket.DisplayLabel(m, g)}, day, bucket.StepHours)
		}
	}
	return table
}
