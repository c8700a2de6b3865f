package core

import (
	"time"

	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/schema"
)

// DailySeries returns revenue, hours and productivity per calendar day, oldest first.
// Multiple stores on the same day are summed.
func DailySeries(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord) []schema.DailyMetric {
	type totals struct {
		date    time.Time
		revenue float64
		hours   float64
	}
	byDay := make(map[string]*totals)
	get := func(d time.Time) *totals {
		key := schema.DayKey(d)
		t, ok := byDay[key]
		if !ok {
			t = &totals{date: schema.TruncateDay(d)}
			byDay[key] = t
		}
		return t
	}

	for _, r := range revenue {
		get(r.Date).revenue += recordRevenue(r)
	}
	for _, s := range shifts {
		get(s.Date).hours += shiftHours(s)
	}

	out := make([]schema.DailyMetric, 0, len(byDay))
	for _, key := range schema.SortedKeys(byDay) {
		t := byDay[key]
		out = append(out, schema.DailyMetric{
			Date:         t.date,
			DayOfWeek:    t.date.Weekday().String(),
			Revenue:      t.revenue,
			Hours:        t.hours,
			Productivity: agg.SafeDiv(t.revenue, t.hours),
		})
	}
	return out
}
