package core

import (
	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/schema"
)

// Summarize computes the headline scalars of a snapshot. The peak slot is the slot with
// the highest average revenue; ties go to the earliest label.
func Summarize(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord, slots []schema.AggregatedSlotMetric) schema.Summary {
	var s schema.Summary
	revenueDays := make(map[string]struct{})
	shiftDays := make(map[string]struct{})

	for _, r := range revenue {
		s.TotalRevenue += recordRevenue(r)
		revenueDays[schema.DayKey(r.Date)] = struct{}{}
	}
	for _, sh := range shifts {
		s.TotalHours += shiftHours(sh)
		shiftDays[schema.DayKey(sh.Date)] = struct{}{}
	}
	s.AvgProductivity = agg.SafeDiv(s.TotalRevenue, s.TotalHours)
	s.RevenueDays = len(revenueDays)
	s.ShiftDays = len(shiftDays)

	best := 0.0
	for _, m := range slots {
		if m.AvgRevenue > best {
			best = m.AvgRevenue
			s.PeakSlot = m.Slot
		}
	}
	return s
}
