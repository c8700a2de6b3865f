package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func TestBuildHeatmap(t *testing.T) {
	shifts := []schema.ShiftRecord{
		shift("s1", "a", day(3), "09:00", "10:00"),  // Monday
		shift("s1", "a", day(10), "09:00", "09:30"), // Monday
	}
	rev := []schema.RevenueRecord{
		revenue("s1", day(3), map[string]float64{"09:00-09:30": 30}), // Monday
		revenue("s1", day(4), map[string]float64{"10:00-10:30": 50}), // Tuesday
	}

	hm := BuildHeatmap(shifts, rev, schema.HalfHour)

	require.Len(t, hm.Rows, 7)
	assert.Equal(t, "Monday", hm.Rows[0].Day)
	assert.Equal(t, "Sunday", hm.Rows[6].Day)
	assert.Equal(t, []string{"09:00-09:30", "09:30-10:00", "10:00-10:30"}, hm.Slots)

	monday := hm.Rows[0].Cells
	require.Len(t, monday, 3)
	require.NotNil(t, monday[0])
	assert.Equal(t, 0.5, monday[0].AvgHours, "1.0 h over two Mondays")
	assert.Equal(t, 30.0, monday[0].AvgRevenue, "one Monday revenue record")
	assert.Equal(t, 60.0, monday[0].Productivity)
	assert.Equal(t, 2, monday[0].SampleCount)

	require.NotNil(t, monday[1])
	assert.Equal(t, 0.5, monday[1].AvgHours)
	assert.Equal(t, 0.0, monday[1].Productivity)
	assert.Equal(t, 1, monday[1].SampleCount)
	assert.Nil(t, monday[2])

	tuesday := hm.Rows[1].Cells
	assert.Nil(t, tuesday[0])
	require.NotNil(t, tuesday[2])
	assert.Equal(t, 50.0, tuesday[2].AvgRevenue)
	assert.Equal(t, 0.0, tuesday[2].Productivity)

	for _, row := range hm.Rows[2:] {
		for _, c := range row.Cells {
			assert.Nil(t, c)
		}
	}
}

func TestBuildHeatmap_Empty(t *testing.T) {
	hm := BuildHeatmap(nil, nil, schema.Hour)
	assert.Len(t, hm.Rows, 7)
	assert.Empty(t, hm.Slots)
	assert.Empty(t, Cells(hm))
}

func TestBuildHeatmap_OvernightStaysOnShiftDate(t *testing.T) {
	hm := BuildHeatmap([]schema.ShiftRecord{shift("s1", "a", day(9), "23:00", "01:00")}, nil, schema.HalfHour) // Sunday

	cells := Cells(hm)
	require.Len(t, cells, 4)
	for _, c := range cells {
		assert.Equal(t, "Sunday", c.DayOfWeek)
	}
	assert.Equal(t, []string{"00:00-00:30", "00:30-01:00", "23:00-23:30", "23:30-00:00"}, hm.Slots)
}
