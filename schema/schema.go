// Package schema has models, constants and helpers shared by all parts of slotpulse.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRecord is the revenue of one store on one calendar day, split into intraday slots.
type RevenueRecord struct {
	StoreID      string             `json:"store_id"`
	Date         time.Time          `json:"date"`
	Slots        map[string]float64 `json:"slots"`         // Native slot label -> revenue
	TotalRevenue float64            `json:"total_revenue"` // Reported total; may differ from the slot sum
}

// ShiftRecord is one scheduled shift of one employee.
// EndTime earlier than StartTime means the shift crosses midnight.
type ShiftRecord struct {
	StoreID    string    `json:"store_id"`
	EmployeeID string    `json:"employee_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"` // HH:MM
	EndTime    string    `json:"end_time"`   // HH:MM
	ShiftType  string    `json:"shift_type"`
}

// Dataset is a raw, unfiltered collection of records as delivered by a record source.
type Dataset struct {
	Revenue []RevenueRecord `json:"revenue"`
	Shifts  []ShiftRecord   `json:"shifts"`
}

// DropReport counts the records discarded at the ingestion boundary.
type DropReport struct {
	MissingDate   int `json:"missing_date"`
	MalformedTime int `json:"malformed_time"`
	Duplicate     int `json:"duplicate"`
	ShiftType     int `json:"shift_type"` // Excluded by the shift-type allow-list
}

// Total returns the number of records dropped for data-quality reasons.
// Shift-type exclusions are a filter, not a defect, and are not counted.
func (d DropReport) Total() int {
	return d.MissingDate + d.MalformedTime + d.Duplicate
}

// FilterContext is the immutable set of filters applied to one engine run.
type FilterContext struct {
	StoreIDs    []string       `json:"store_ids"`   // Empty means all stores
	From        time.Time      `json:"from"`        // Inclusive calendar day, zero means unbounded
	To          time.Time      `json:"to"`          // Inclusive calendar day, zero means unbounded
	Weekdays    []time.Weekday `json:"weekdays"`    // Empty means all days
	ShiftTypes  []string       `json:"shift_types"` // Empty means every observed type
	Granularity Granularity    `json:"granularity"`
}

// Snapshot is the filtered, validated input handed to the aggregators.
type Snapshot struct {
	Filter  FilterContext   `json:"filter"`
	Revenue []RevenueRecord `json:"revenue"`
	Shifts  []ShiftRecord   `json:"shifts"`
	Dropped DropReport      `json:"dropped"`
}

// AggregatedSlotMetric is the averaged productivity of one display bucket.
type AggregatedSlotMetric struct {
	Slot           string  `json:"slot"`
	AvgRevenue     float64 `json:"avg_revenue"`
	AvgHours       float64 `json:"avg_hours"`
	RevenuePerHour float64 `json:"revenue_per_hour"`
}

// HeatmapCell is the averaged productivity of one (weekday, slot) pair.
type HeatmapCell struct {
	DayOfWeek    string  `json:"day_of_week"`
	Slot         string  `json:"slot"`
	AvgRevenue   float64 `json:"avg_revenue"`
	AvgHours     float64 `json:"avg_hours"`
	Productivity float64 `json:"productivity"`
	SampleCount  int     `json:"sample_count"`
}

// HeatmapRow holds the cells of one weekday. A nil cell means no data was observed.
type HeatmapRow struct {
	Day   string         `json:"day"`
	Cells []*HeatmapCell `json:"cells"`
}

// Heatmap is the 7 x N weekday by slot matrix.
type Heatmap struct {
	Granularity Granularity  `json:"granularity"`
	Slots       []string     `json:"slots"`
	Rows        []HeatmapRow `json:"rows"`
}

// DailyMetric is the productivity of one calendar day.
type DailyMetric struct {
	Date         time.Time `json:"date"`
	DayOfWeek    string    `json:"day_of_week"`
	Revenue      float64   `json:"revenue"`
	Hours        float64   `json:"hours"`
	Productivity float64   `json:"productivity"`
}

// StoreProductivity summarizes one store for cross-store comparison.
type StoreProductivity struct {
	StoreID                string  `json:"store_id"`
	Months                 int     `json:"months"`
	Days                   int     `json:"days"`
	TotalRevenue           float64 `json:"total_revenue"`
	TotalHours             float64 `json:"total_hours"`
	AvgMonthlyProductivity float64 `json:"avg_monthly_productivity"`
	AvgMonthlyHours        float64 `json:"avg_monthly_hours"`
}

// AffectedCell is one piece of numeric evidence attached to an insight.
type AffectedCell struct {
	StoreID      string  `json:"store_id,omitempty"`
	Day          string  `json:"day,omitempty"`
	Slot         string  `json:"slot,omitempty"`
	AvgRevenue   float64 `json:"avg_revenue"`
	AvgHours     float64 `json:"avg_hours"`
	Productivity float64 `json:"productivity"`
	SampleCount  int     `json:"sample_count"`
}

// Insight is one staffing recommendation.
type Insight struct {
	Kind            InsightKind     `json:"kind"`
	Description     string          `json:"description"`
	AffectedCells   []AffectedCell  `json:"affected_cells"`
	SuggestedAction string          `json:"suggested_action"`
	EstimatedImpact decimal.Decimal `json:"estimated_impact"` // Currency per month
}

// Summary holds the headline scalars of a run.
type Summary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalHours      float64 `json:"total_hours"`
	AvgProductivity float64 `json:"avg_productivity"`
	PeakSlot        string  `json:"peak_slot"`
	RevenueDays     int     `json:"revenue_days"`
	ShiftDays       int     `json:"shift_days"`
}

// Report bundles every derived result of one run.
type Report struct {
	Filter   FilterContext          `json:"filter"`
	Summary  Summary                `json:"summary"`
	Slots    []AggregatedSlotMetric `json:"slots"`
	Heatmap  Heatmap                `json:"heatmap"`
	Daily    []DailyMetric          `json:"daily"`
	Stores   []StoreProductivity    `json:"stores"`
	Insights []Insight              `json:"insights"`
	Dropped  DropReport             `json:"dropped"`
}

// InsightConfig holds the business rules used by the insight generator.
type InsightConfig struct {
	OpenTime        string  `json:"open_time"`  // HH:MM, inclusive
	CloseTime       string  `json:"close_time"` // HH:MM, exclusive; at or before OpenTime wraps past midnight
	LowThreshold    float64 `json:"low_threshold"`
	HighThreshold   float64 `json:"high_threshold"`
	GapThresholdPct float64 `json:"gap_threshold_pct"`
	HourlyCost      float64 `json:"hourly_cost"`
	WeeksPerMonth   float64 `json:"weeks_per_month"`
	MinSampleCount  int     `json:"min_sample_count"`
}
