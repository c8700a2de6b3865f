package agg

import (
	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

// RevenueTable is the revenue accumulated per display bucket.
// Averages divide by every revenue-record day of the bucket's group, so a slot that
// was missing on some day counts as zero revenue for that day.
type RevenueTable struct {
	*Accumulator
	groupDays map[string]daySet
	Skipped   int // Slot entries whose labels could not be parsed
}

// RecordDays returns the number of revenue-record days in a group.
func (r *RevenueTable) RecordDays(group string) int {
	return len(r.groupDays[group])
}

// RecordDayKeys returns the revenue-record days of a group, ascending.
func (r *RevenueTable) RecordDayKeys(group string) []string {
	return schema.SortedKeys(r.groupDays[group])
}

// Average returns the average revenue of key over the revenue-record days of its group.
func (r *RevenueTable) Average(key Key) float64 {
	return SafeDiv(r.Sum(key), float64(r.RecordDays(key.Group)))
}

// AggregateRevenue re-buckets native slot labels into display buckets and accumulates
// their amounts. A native slot wider than one half-hour is split evenly across the
// half-hours it covers; hourly buckets sum their two halves.
func AggregateRevenue(records []schema.RevenueRecord, g schema.Granularity, group GroupFunc) *RevenueTable {
	table := &RevenueTable{
		Accumulator: NewAccumulator(),
		groupDays:   make(map[string]daySet),
	}
	for _, r := range records {
		day := schema.DayKey(r.Date)
		grp := group(r.StoreID, r.Date)
		contributed := false
		for _, label := range schema.SortedKeys(r.Slots) {
			span, err := bucket.ParseSlotLabel(label)
			if err != nil {
				table.Skipped++
				continue
			}
			halves := span.HalfHours()
			share := r.Slots[label] / float64(len(halves))
			for _, m := range halves {
				table.Add(Key{Group: grp, Slot: bucket.DisplayLabel(m, g)}, day, share)
			}
			contributed = true
		}
		if !contributed {
			continue
		}
		set, ok := table.groupDays[grp]
		if !ok {
			set = make(daySet)
			table.groupDays[grp] = set
		}
		set[day] = struct{}{}
	}
	return table
}
