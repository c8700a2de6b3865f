package core

import (
	"fmt"
	"testing"

	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

// syntheticDataset covers stores x days of half-hour revenue from 10:00 to 23:00
// and two overlapping shifts per store and day.
func syntheticDataset(stores, days int) *schema.Dataset {
	ds := &schema.Dataset{}
	for s := range stores {
		store := fmt.Sprintf("s%03d", s)
		for d := range days {
			date := day(1).AddDate(0, 0, d)
			slots := make(map[string]float64)
			for m := 10 * 60; m < 23*60; m += bucket.StepMinutes {
				slots[bucket.Label(m, schema.HalfHour)] = float64(20 + (m/30+s+d)%40)
			}
			ds.Revenue = append(ds.Revenue, revenue(store, date, slots))
			ds.Shifts = append(ds.Shifts,
				shift(store, "open", date, "09:30", "16:00"),
				shift(store, "close", date, "15:30", "23:30"),
			)
		}
	}
	return ds
}

func BenchmarkBuildReport(b *testing.B) {
	for _, size := range []struct{ stores, days int }{{1, 30}, {10, 90}, {50, 365}} {
		ds := syntheticDataset(size.stores, size.days)
		b.Run(fmt.Sprintf("stores=%d/days=%d", size.stores, size.days), func(b *testing.B) {
			ic := defaultInsightConfig()
			for b.Loop() {
				snap := ApplyFilter(ds, schema.FilterContext{Granularity: schema.Hour})
				_ = BuildReport(snap, ic)
			}
		})
	}
}
