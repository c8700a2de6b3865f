package core

import (
	"time"

	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

// Compose fuses averaged hours and averaged revenue per display bucket.
// The join is a full outer join: a bucket seen on only one side still appears with the
// other side at zero. Results are sorted by slot label ascending.
func Compose(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord, g schema.Granularity, weekdays []time.Weekday) []schema.AggregatedSlotMetric {
	shifts, revenue = restrictWeekdays(shifts, revenue, weekdays)
	hours := agg.AggregateHours(shifts, g, agg.AllRecords)
	rev := agg.AggregateRevenue(revenue, g, agg.AllRecords)

	labels := unionSlots(hours.Accumulator, rev.Accumulator)
	out := make([]schema.AggregatedSlotMetric, 0, len(labels))
	for _, label := range labels {
		key := agg.Key{Slot: label}
		avgHours := hours.Average(key)
		avgRevenue := rev.Average(key)
		out = append(out, schema.AggregatedSlotMetric{
			Slot:           label,
			AvgRevenue:     avgRevenue,
			AvgHours:       avgHours,
			RevenuePerHour: agg.SafeDiv(avgRevenue, avgHours),
		})
	}
	return out
}

// restrictWeekdays keeps the records whose own date falls on one of the weekdays.
func restrictWeekdays(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord, weekdays []time.Weekday) ([]schema.ShiftRecord, []schema.RevenueRecord) {
	if len(weekdays) == 0 {
		return shifts, revenue
	}
	allowed := make(map[time.Weekday]struct{}, len(weekdays))
	for _, wd := range weekdays {
		allowed[wd] = struct{}{}
	}

	var s []schema.ShiftRecord
	for _, sh := range shifts {
		if _, ok := allowed[sh.Date.Weekday()]; ok {
			s = append(s, sh)
		}
	}
	var r []schema.RevenueRecord
	for _, rr := range revenue {
		if _, ok := allowed[rr.Date.Weekday()]; ok {
			r = append(r, rr)
		}
	}
	return s, r
}

// unionSlots returns the slot labels seen by either accumulator, ascending.
func unionSlots(a, b *agg.Accumulator) []string {
	seen := make(map[string]struct{})
	for _, s := range a.Slots() {
		seen[s] = struct{}{}
	}
	for _, s := range b.Slots() {
		seen[s] = struct{}{}
	}
	return schema.SortedKeys(seen)
}

// recordRevenue is the day total of a revenue record. The reported total wins when
// present; otherwise the parsable slots are summed.
func recordRevenue(r schema.RevenueRecord) float64 {
	if r.TotalRevenue > 0 {
		return r.TotalRevenue
	}
	sum := 0.0
	for _, label := range schema.SortedKeys(r.Slots) {
		if _, err := bucket.ParseSlotLabel(label); err == nil {
			sum += r.Slots[label]
		}
	}
	return sum
}

// shiftHours is the labor of one shift in internal steps, 0 when its times are invalid.
func shiftHours(s schema.ShiftRecord) float64 {
	steps, err := bucket.Decompose(s.StartTime, s.EndTime)
	if err != nil {
		return 0
	}
	return float64(len(steps)) * bucket.StepHours
}
