// Package parquet provides row types and functions for exporting slotpulse
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/slotpulse/schema"
)

// SlotRow is one display bucket of the slot productivity table.
type SlotRow struct {
	// Slot is the display label, e.g. 09:00-09:30 or 09:00
	Slot string `parquet:"slot,snappy"`

	// AvgRevenue is the revenue per revenue-record day
	AvgRevenue float64 `parquet:"avg_revenue,snappy"`

	// AvgHours is the staffed hours per contributing day
	AvgHours float64 `parquet:"avg_hours,snappy"`

	// RevenuePerHour is AvgRevenue over AvgHours, 0 without staffing
	RevenuePerHour float64 `parquet:"revenue_per_hour,snappy"`

	// Band is the productivity band label
	Band string `parquet:"band,snappy"`
}

// HeatmapCellRow is one present cell of the weekday by slot heatmap.
// Absent cells are not written.
type HeatmapCellRow struct {
	DayOfWeek    string  `parquet:"day_of_week,snappy"`
	DayIndex     int32   `parquet:"day_index,snappy"` // Monday is 0
	Slot         string  `parquet:"slot,snappy"`
	AvgRevenue   float64 `parquet:"avg_revenue,snappy"`
	AvgHours     float64 `parquet:"avg_hours,snappy"`
	Productivity float64 `parquet:"productivity,snappy"`
	SampleCount  int32   `parquet:"sample_count,snappy"`
}

// InsightRow is one affected cell of an insight, flattened with its insight.
type InsightRow struct {
	InsightIndex    int32   `parquet:"insight_index,snappy"`
	Kind            string  `parquet:"kind,snappy"`
	Description     string  `parquet:"description,snappy"`
	SuggestedAction string  `parquet:"suggested_action,snappy"`
	EstimatedImpact float64 `parquet:"estimated_impact,snappy"`

	StoreID      *string `parquet:"store_id,optional,snappy"`
	Day          *string `parquet:"day,optional,snappy"`
	Slot         *string `parquet:"slot,optional,snappy"`
	AvgRevenue   float64 `parquet:"avg_revenue,snappy"`
	AvgHours     float64 `parquet:"avg_hours,snappy"`
	Productivity float64 `parquet:"productivity,snappy"`
	SampleCount  int32   `parquet:"sample_count,snappy"`
}

// StoreRow is one store of the cross-store comparison.
type StoreRow struct {
	StoreID                string  `parquet:"store_id,snappy"`
	Months                 int32   `parquet:"months,snappy"`
	Days                   int32   `parquet:"days,snappy"`
	TotalRevenue           float64 `parquet:"total_revenue,snappy"`
	TotalHours             float64 `parquet:"total_hours,snappy"`
	AvgMonthlyProductivity float64 `parquet:"avg_monthly_productivity,snappy"`
	AvgMonthlyHours        float64 `parquet:"avg_monthly_hours,snappy"`
}

// DailyRow is one calendar day of the daily series.
type DailyRow struct {
	// Date is stored as TIMESTAMP at midnight UTC
	Date         time.Time `parquet:"date,snappy"`
	DayOfWeek    string    `parquet:"day_of_week,snappy"`
	Revenue      float64   `parquet:"revenue,snappy"`
	Hours        float64   `parquet:"hours,snappy"`
	Productivity float64   `parquet:"productivity,snappy"`
}

// Write writes rows to w as a single Parquet file. The schema is derived from
// the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// SlotRows converts slot metrics into Parquet rows.
func SlotRows(slots []schema.EnrichedSlotMetric) []SlotRow {
	rows := make([]SlotRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, SlotRow{
			Slot:           s.Slot,
			AvgRevenue:     s.AvgRevenue,
			AvgHours:       s.AvgHours,
			RevenuePerHour: s.RevenuePerHour,
			Band:           string(s.Band),
		})
	}
	return rows
}

// HeatmapRows converts the present cells of a heatmap into Parquet rows.
func HeatmapRows(hm schema.Heatmap) []HeatmapCellRow {
	var rows []HeatmapCellRow
	for i, row := range hm.Rows {
		for _, c := range row.Cells {
			if c == nil {
				continue
			}
			rows = append(rows, HeatmapCellRow{
				DayOfWeek:    c.DayOfWeek,
				DayIndex:     int32(i),
				Slot:         c.Slot,
				AvgRevenue:   c.AvgRevenue,
				AvgHours:     c.AvgHours,
				Productivity: c.Productivity,
				SampleCount:  int32(c.SampleCount),
			})
		}
	}
	return rows
}

// InsightRows flattens insights into one row per affected cell.
func InsightRows(insights []schema.Insight) []InsightRow {
	var rows []InsightRow
	for i, in := range insights {
		for _, c := range in.AffectedCells {
			rows = append(rows, InsightRow{
				InsightIndex:    int32(i),
				Kind:            string(in.Kind),
				Description:     in.Description,
				SuggestedAction: in.SuggestedAction,
				EstimatedImpact: in.EstimatedImpact.InexactFloat64(),
				StoreID:         optional(c.StoreID),
				Day:             optional(c.Day),
				Slot:            optional(c.Slot),
				AvgRevenue:      c.AvgRevenue,
				AvgHours:        c.AvgHours,
				Productivity:    c.Productivity,
				SampleCount:     int32(c.SampleCount),
			})
		}
	}
	return rows
}

// StoreRows converts store comparisons into Parquet rows.
func StoreRows(stores []schema.StoreProductivity) []StoreRow {
	rows := make([]StoreRow, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, StoreRow{
			StoreID:                s.StoreID,
			Months:                 int32(s.Months),
			Days:                   int32(s.Days),
			TotalRevenue:           s.TotalRevenue,
			TotalHours:             s.TotalHours,
			AvgMonthlyProductivity: s.AvgMonthlyProductivity,
			AvgMonthlyHours:        s.AvgMonthlyHours,
		})
	}
	return rows
}

// DailyRows converts a daily series into Parquet rows.
func DailyRows(daily []schema.DailyMetric) []DailyRow {
	rows := make([]DailyRow, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, DailyRow{
			Date:         d.Date,
			DayOfWeek:    d.DayOfWeek,
			Revenue:      d.Revenue,
			Hours:        d.Hours,
			Productivity: d.Productivity,
		})
	}
	return rows
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
