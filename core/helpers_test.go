package core

import (
	"testing"
	"time"

	"github.com/huangsam/slotpulse/schema"
)

// 2025-03-03 is a Monday.
func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func shift(store, emp string, date time.Time, start, end string) schema.ShiftRecord {
	return schema.ShiftRecord{StoreID: store, EmployeeID: emp, Date: date, StartTime: start, EndTime: end, ShiftType: "regular"}
}

func revenue(store string, date time.Time, slots map[string]float64) schema.RevenueRecord {
	return schema.RevenueRecord{StoreID: store, Date: date, Slots: slots}
}

func defaultInsightConfig() schema.InsightConfig {
	return schema.InsightConfig{
		OpenTime:        "11:00",
		CloseTime:       "23:00",
		LowThreshold:    30,
		HighThreshold:   60,
		GapThresholdPct: 0.20,
		HourlyCost:      15,
		WeeksPerMonth:   4,
		MinSampleCount:  1,
	}
}

func findSlot(t *testing.T, slots []schema.AggregatedSlotMetric, label string) schema.AggregatedSlotMetric {
	for _, s := range slots {
		if s.Slot == label {
			return s
		}
	}
	t.Helper()
	t.Fatalf("slot %s not found", label)
	return schema.AggregatedSlotMetric{}
}

// weekHeatmap builds a heatmap with a single Monday row holding the given cells.
func weekHeatmap(cells ...*schema.HeatmapCell) schema.Heatmap {
	hm := schema.Heatmap{Granularity: schema.HalfHour}
	for _, wd := range schema.WeekOrder {
		row := schema.HeatmapRow{Day: wd.String()}
		if wd == time.Monday {
			for _, c := range cells {
				c.DayOfWeek = "Monday"
				hm.Slots = append(hm.Slots, c.Slot)
				row.Cells = append(row.Cells, c)
			}
		} else {
			row.Cells = make([]*schema.HeatmapCell, len(cells))
		}
		hm.Rows = append(hm.Rows, row)
	}
	return hm
}
