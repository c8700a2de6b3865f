package core

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func reportFixture() *schema.Dataset {
	return &schema.Dataset{
		Revenue: []schema.RevenueRecord{
			revenue("s1", day(3), map[string]float64{"12:00-12:30": 10, "12:30-13:00": 80, "13:00-14:00": 40}),
			revenue("s2", day(3), map[string]float64{"12:00-12:30": 30}),
			revenue("s1", day(4), map[string]float64{"12:00-12:30": 25, "19:00": 90}),
			revenue("s2", day(11), map[string]float64{"12:30-13:00": 20}),
		},
		Shifts: []schema.ShiftRecord{
			shift("s1", "a", day(3), "12:00", "14:00"),
			shift("s1", "b", day(3), "12:30", "13:00"),
			shift("s2", "c", day(3), "12:00", "13:00"),
			shift("s1", "a", day(4), "11:45", "20:00"),
			shift("s2", "c", day(11), "22:00", "02:00"),
		},
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	f := schema.FilterContext{Granularity: schema.HalfHour}
	ic := defaultInsightConfig()

	first, err := json.Marshal(BuildReport(ApplyFilter(reportFixture(), f), ic))
	require.NoError(t, err)
	second, err := json.Marshal(BuildReport(ApplyFilter(reportFixture(), f), ic))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	reversed := reportFixture()
	slices.Reverse(reversed.Revenue)
	slices.Reverse(reversed.Shifts)
	third, err := json.Marshal(BuildReport(ApplyFilter(reversed, f), ic))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(third), "input order does not change the result")
}

func TestBuildReport_Contents(t *testing.T) {
	snap := ApplyFilter(reportFixture(), schema.FilterContext{})
	report := BuildReport(snap, defaultInsightConfig())

	assert.Equal(t, schema.HalfHour, report.Heatmap.Granularity, "zero granularity defaults to half-hours")
	assert.Len(t, report.Heatmap.Rows, 7)
	assert.NotEmpty(t, report.Slots)
	assert.Len(t, report.Stores, 2)
	assert.Len(t, report.Daily, 3)
	assert.Equal(t, 3, report.Summary.RevenueDays)
	assert.Equal(t, 3, report.Summary.ShiftDays)
	assert.NotEmpty(t, report.Insights)
	for _, in := range report.Insights {
		assert.NotEmpty(t, in.AffectedCells)
		assert.NotEmpty(t, in.Description)
	}
}

func TestBuildReport_JSONHasNullCells(t *testing.T) {
	snap := ApplyFilter(reportFixture(), schema.FilterContext{Granularity: schema.Hour})
	data, err := json.Marshal(BuildReport(snap, defaultInsightConfig()).Heatmap)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")
}
