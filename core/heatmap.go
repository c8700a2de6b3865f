package core

import (
	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/schema"
)

// BuildHeatmap fuses hours and revenue per (weekday, slot). The weekday comes from each
// record's own date. It always returns seven rows, Monday first, and one column per
// observed slot. A cell with neither staffed hours nor revenue entries is nil.
func BuildHeatmap(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord, g schema.Granularity) schema.Heatmap {
	hours := agg.AggregateHours(shifts, g, agg.ByWeekday)
	rev := agg.AggregateRevenue(revenue, g, agg.ByWeekday)
	slots := unionSlots(hours.Accumulator, rev.Accumulator)

	hm := schema.Heatmap{
		Granularity: g,
		Slots:       slots,
		Rows:        make([]schema.HeatmapRow, 0, len(schema.WeekOrder)),
	}
	for _, wd := range schema.WeekOrder {
		day := wd.String()
		row := schema.HeatmapRow{Day: day, Cells: make([]*schema.HeatmapCell, len(slots))}
		for i, slot := range slots {
			key := agg.Key{Group: day, Slot: slot}
			if !hours.Has(key) && !rev.Has(key) {
				continue
			}
			avgHours := hours.Average(key)
			avgRevenue := rev.Average(key)
			row.Cells[i] = &schema.HeatmapCell{
				DayOfWeek:    day,
				Slot:         slot,
				AvgRevenue:   avgRevenue,
				AvgHours:     avgHours,
				Productivity: agg.SafeDiv(avgRevenue, avgHours),
				SampleCount:  sampleCount(hours.DayKeys(key), rev.DayKeys(key)),
			}
		}
		hm.Rows = append(hm.Rows, row)
	}
	return hm
}

// sampleCount counts the distinct calendar days across both day lists.
func sampleCount(a, b []string) int {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, d := range a {
		seen[d] = struct{}{}
	}
	for _, d := range b {
		seen[d] = struct{}{}
	}
	return len(seen)
}

// Cells flattens the present cells of a heatmap in row-major order.
func Cells(hm schema.Heatmap) []schema.HeatmapCell {
	var out []schema.HeatmapCell
	for _, row := range hm.Rows {
		for _, c := range row.Cells {
			if c != nil {
				out = append(out, *c)
			}
		}
	}
	return out
}
