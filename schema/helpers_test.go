package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"mon", time.Monday, false},
		{"Monday", time.Monday, false},
		{" TUE ", time.Tuesday, false},
		{"thurs", time.Thursday, false},
		{"sun", time.Sunday, false},
		{"funday", time.Sunday, true},
		{"", time.Sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	for i, wd := range WeekOrder {
		assert.Equal(t, i, WeekdayIndex(wd), "%s should be at position %d", wd, i)
	}
}

func TestSortWeekdays(t *testing.T) {
	in := []time.Weekday{time.Sunday, time.Wednesday, time.Monday, time.Sunday}
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Sunday}, SortWeekdays(in))
	assert.Empty(t, SortWeekdays(nil))
}

func TestDayAndMonthKeys(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", DayKey(ts))
	assert.Equal(t, "2025-03", MonthKey(ts))
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), TruncateDay(ts))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}

func TestGetBand(t *testing.T) {
	tests := []struct {
		name  string
		prod  float64
		hours float64
		want  Band
	}{
		{"no hours", 0, 0, EmptyBand},
		{"below low", 20, 2, LowBand},
		{"at low", 30, 2, NormalBand},
		{"at high", 60, 2, NormalBand},
		{"above high", 75, 2, HighBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetBand(tt.prod, tt.hours, 30, 60))
		})
	}
}

func TestEnrichSlots(t *testing.T) {
	slots := []AggregatedSlotMetric{
		{Slot: "09:00-09:30", AvgRevenue: 40, AvgHours: 2, RevenuePerHour: 20},
		{Slot: "09:30-10:00", AvgRevenue: 140, AvgHours: 2, RevenuePerHour: 70},
	}
	got := EnrichSlots(slots, 30, 60)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, LowBand, got[0].Band)
	assert.Equal(t, HighBand, got[1].Band)
	assert.Equal(t, "09:30-10:00", got[1].Slot)
}

func TestDropReportTotal(t *testing.T) {
	d := DropReport{MissingDate: 1, MalformedTime: 2, Duplicate: 3, ShiftType: 10}
	assert.Equal(t, 6, d.Total())
}
