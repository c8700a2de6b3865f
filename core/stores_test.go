package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func TestCompareStores_MonthlyAverage(t *testing.T) {
	april := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	rev := []schema.RevenueRecord{
		{StoreID: "s1", Date: day(3), TotalRevenue: 400},
		{StoreID: "s1", Date: april, TotalRevenue: 600},
		{StoreID: "s1", Date: may, Slots: map[string]float64{"09:00-09:30": 60, "09:30-10:00": 40}},
	}
	shifts := []schema.ShiftRecord{
		shift("s1", "a", day(3), "09:00", "19:00"),
		shift("s1", "a", april, "09:00", "19:00"),
	}

	stores := CompareStores(shifts, rev)
	require.Len(t, stores, 1)
	s := stores[0]
	assert.Equal(t, "s1", s.StoreID)
	assert.Equal(t, 2, s.Months, "months without hours do not count")
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 1100.0, s.TotalRevenue)
	assert.Equal(t, 20.0, s.TotalHours)
	assert.Equal(t, 50.0, s.AvgMonthlyProductivity)
	assert.Equal(t, 10.0, s.AvgMonthlyHours)
}

func TestCompareStores_SortedByProductivity(t *testing.T) {
	rev := []schema.RevenueRecord{
		{StoreID: "a", Date: day(3), TotalRevenue: 350},
		{StoreID: "b", Date: day(3), TotalRevenue: 500},
		{StoreID: "c", Date: day(3), TotalRevenue: 100},
	}
	shifts := []schema.ShiftRecord{
		shift("a", "x", day(3), "09:00", "19:00"),
		shift("b", "y", day(3), "09:00", "19:00"),
	}

	stores := CompareStores(shifts, rev)
	require.Len(t, stores, 3)
	assert.Equal(t, "b", stores[0].StoreID)
	assert.Equal(t, 50.0, stores[0].AvgMonthlyProductivity)
	assert.Equal(t, "a", stores[1].StoreID)
	assert.Equal(t, 35.0, stores[1].AvgMonthlyProductivity)
	assert.Equal(t, "c", stores[2].StoreID)
	assert.Equal(t, 0.0, stores[2].AvgMonthlyProductivity, "no staffed hours")
}

func TestDailySeries(t *testing.T) {
	rev := []schema.RevenueRecord{
		{StoreID: "s1", Date: day(4), TotalRevenue: 100},
		{StoreID: "s2", Date: day(4), TotalRevenue: 50},
		{StoreID: "s1", Date: day(3), Slots: map[string]float64{"09:00-09:30": 20, "bogus": 99}},
	}
	shifts := []schema.ShiftRecord{
		shift("s1", "a", day(4), "09:00", "12:00"),
		shift("s1", "a", day(5), "09:00", "10:00"),
	}

	daily := DailySeries(shifts, rev)
	require.Len(t, daily, 3)

	assert.Equal(t, day(3), daily[0].Date)
	assert.Equal(t, "Monday", daily[0].DayOfWeek)
	assert.Equal(t, 20.0, daily[0].Revenue)
	assert.Equal(t, 0.0, daily[0].Productivity)

	assert.Equal(t, 150.0, daily[1].Revenue)
	assert.Equal(t, 3.0, daily[1].Hours)
	assert.Equal(t, 50.0, daily[1].Productivity)

	assert.Equal(t, 0.0, daily[2].Revenue)
	assert.Equal(t, 1.0, daily[2].Hours)

	assert.Equal(t, daily[1:], latestDaily(daily, 2))
	assert.Equal(t, daily, latestDaily(daily, 0))
}

func TestSummarize(t *testing.T) {
	shifts, rev := overlapFixture()
	slots := Compose(shifts, rev, schema.HalfHour, nil)

	s := Summarize(shifts, rev, slots)
	assert.Equal(t, 120.0, s.TotalRevenue)
	assert.Equal(t, 2.0, s.TotalHours)
	assert.Equal(t, 60.0, s.AvgProductivity)
	assert.Equal(t, "09:30-10:00", s.PeakSlot)
	assert.Equal(t, 1, s.RevenueDays)
	assert.Equal(t, 1, s.ShiftDays)
}

func TestSummarize_PeakTieGoesToEarliest(t *testing.T) {
	slots := []schema.AggregatedSlotMetric{
		{Slot: "09:00-09:30", AvgRevenue: 40},
		{Slot: "12:00-12:30", AvgRevenue: 40},
	}
	assert.Equal(t, "09:00-09:30", Summarize(nil, nil, slots).PeakSlot)
	assert.Equal(t, "", Summarize(nil, nil, nil).PeakSlot)
}
