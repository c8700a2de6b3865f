package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func overlapFixture() ([]schema.ShiftRecord, []schema.RevenueRecord) {
	shifts := []schema.ShiftRecord{
		shift("s1", "a", day(3), "09:00", "10:00"),
		shift("s1", "b", day(3), "09:30", "10:30"),
	}
	rev := []schema.RevenueRecord{
		revenue("s1", day(3), map[string]float64{
			"09:00-09:30": 20,
			"09:30-10:00": 60,
			"10:00-10:30": 10,
			"11:00-11:30": 30,
		}),
	}
	return shifts, rev
}

func TestCompose_FullOuterJoin(t *testing.T) {
	shifts, rev := overlapFixture()
	slots := Compose(shifts, rev, schema.HalfHour, nil)

	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Slot)
	}
	assert.Equal(t, []string{"09:00-09:30", "09:30-10:00", "10:00-10:30", "11:00-11:30"}, labels)

	assert.Equal(t, schema.AggregatedSlotMetric{Slot: "09:00-09:30", AvgRevenue: 20, AvgHours: 0.5, RevenuePerHour: 40}, slots[0])
	assert.Equal(t, schema.AggregatedSlotMetric{Slot: "09:30-10:00", AvgRevenue: 60, AvgHours: 1.0, RevenuePerHour: 60}, slots[1])
	assert.Equal(t, schema.AggregatedSlotMetric{Slot: "10:00-10:30", AvgRevenue: 10, AvgHours: 0.5, RevenuePerHour: 20}, slots[2])

	revenueOnly := slots[3]
	assert.Equal(t, 30.0, revenueOnly.AvgRevenue)
	assert.Equal(t, 0.0, revenueOnly.AvgHours)
	assert.Equal(t, 0.0, revenueOnly.RevenuePerHour)
}

func TestCompose_HoursOnlySlot(t *testing.T) {
	slots := Compose([]schema.ShiftRecord{shift("s1", "a", day(3), "07:00", "07:30")}, nil, schema.HalfHour, nil)
	require.Len(t, slots, 1)
	assert.Equal(t, 0.5, slots[0].AvgHours)
	assert.Equal(t, 0.0, slots[0].RevenuePerHour)
}

func TestCompose_HourlyGranularity(t *testing.T) {
	shifts, rev := overlapFixture()
	slots := Compose(shifts, rev, schema.Hour, nil)

	nine := findSlot(t, slots, "09:00")
	assert.Equal(t, 1.5, nine.AvgHours)
	assert.Equal(t, 80.0, nine.AvgRevenue)
	assert.InDelta(t, 53.333, nine.RevenuePerHour, 0.001)

	ten := findSlot(t, slots, "10:00")
	assert.Equal(t, 0.5, ten.AvgHours)
	assert.Equal(t, 10.0, ten.AvgRevenue)
	assert.Equal(t, 20.0, ten.RevenuePerHour)
}

func TestCompose_WeekdayRestriction(t *testing.T) {
	shifts := []schema.ShiftRecord{
		shift("s1", "a", day(3), "09:00", "09:30"), // Monday
		shift("s1", "a", day(4), "09:00", "10:00"), // Tuesday
	}
	slots := Compose(shifts, nil, schema.HalfHour, []time.Weekday{time.Tuesday})

	require.Len(t, slots, 2)
	assert.Equal(t, 0.5, findSlot(t, slots, "09:00-09:30").AvgHours)
	assert.Equal(t, 0.5, findSlot(t, slots, "09:30-10:00").AvgHours)
}

func TestCompose_EmptyAndDegenerateInputs(t *testing.T) {
	assert.Empty(t, Compose(nil, nil, schema.HalfHour, nil))

	rev := []schema.RevenueRecord{revenue("s1", day(3), map[string]float64{"09:00-09:30": 0})}
	for _, s := range Compose(nil, rev, schema.HalfHour, nil) {
		assert.False(t, math.IsNaN(s.RevenuePerHour))
		assert.False(t, math.IsInf(s.RevenuePerHour, 0))
	}
}
