package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/internal/contract"
	mcp_internal "github.com/huangsam/slotpulse/internal/mcp"
	"github.com/huangsam/slotpulse/schema"
)

func monday() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func testDataset() *schema.Dataset {
	return &schema.Dataset{
		Revenue: []schema.RevenueRecord{
			{StoreID: "s1", Date: monday(), TotalRevenue: 40, Slots: map[string]float64{
				"12:00-12:30": 10, "12:30-13:00": 10, "13:00-13:30": 10, "13:30-14:00": 10,
			}},
			{StoreID: "s2", Date: monday(), Slots: map[string]float64{"12:00-12:30": 50, "12:30-13:00": 50}},
		},
		Shifts: []schema.ShiftRecord{
			{StoreID: "s1", EmployeeID: "a", Date: monday(), StartTime: "12:00", EndTime: "14:00"},
			{StoreID: "s2", EmployeeID: "b", Date: monday(), StartTime: "12:00", EndTime: "13:00"},
		},
	}
}

func baseConfig() *contract.Config {
	return &contract.Config{
		Granularity: schema.HalfHour,
		ResultLimit: contract.DefaultResultLimit,
		Insight: schema.InsightConfig{
			OpenTime:        contract.DefaultOpenTime,
			CloseTime:       contract.DefaultCloseTime,
			LowThreshold:    contract.DefaultLowThreshold,
			HighThreshold:   contract.DefaultHighThreshold,
			GapThresholdPct: contract.DefaultGapThresholdPct,
			HourlyCost:      contract.DefaultHourlyCost,
			WeeksPerMonth:   contract.DefaultWeeksPerMonth,
			MinSampleCount:  contract.DefaultMinSampleCount,
		},
	}
}

func callTool(t *testing.T, src contract.RecordSource, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), src, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func datasetSource() *contract.MockRecordSource {
	src := &contract.MockRecordSource{}
	src.On("Load", mock.Anything, mock.Anything).Return(testDataset(), nil)
	return src
}

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), &contract.MockRecordSource{}, nil)
	for _, name := range []string{"get_slot_productivity", "get_heatmap", "get_insights", "get_store_comparison"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers(t *testing.T) {
	t.Run("get_slot_productivity", func(t *testing.T) {
		res := callTool(t, datasetSource(), "get_slot_productivity", nil)
		require.False(t, res.IsError, resultText(t, res))

		var report schema.SlotReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.InDelta(t, 140, report.Summary.TotalRevenue, 1e-9)
		assert.InDelta(t, 3, report.Summary.TotalHours, 1e-9)
		require.NotEmpty(t, report.Slots)
		assert.Equal(t, 1, report.Slots[0].Rank)
	})

	t.Run("get_slot_productivity store filter", func(t *testing.T) {
		res := callTool(t, datasetSource(), "get_slot_productivity", map[string]any{"stores": "s2"})
		require.False(t, res.IsError, resultText(t, res))

		var report schema.SlotReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.InDelta(t, 100, report.Summary.TotalRevenue, 1e-9)
	})

	t.Run("get_heatmap", func(t *testing.T) {
		res := callTool(t, datasetSource(), "get_heatmap", map[string]any{"granularity": 60.0})
		require.False(t, res.IsError, resultText(t, res))

		var hm schema.Heatmap
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &hm))
		assert.Equal(t, schema.Hour, hm.Granularity)
		assert.Len(t, hm.Rows, 7)
		assert.Contains(t, hm.Slots, "12:00")
	})

	t.Run("get_insights", func(t *testing.T) {
		res := callTool(t, datasetSource(), "get_insights", nil)
		require.False(t, res.IsError, resultText(t, res))

		var insights []schema.Insight
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &insights))
		var kinds []schema.InsightKind
		for _, in := range insights {
			kinds = append(kinds, in.Kind)
		}
		assert.Contains(t, kinds, schema.CrossStoreGap)
	})

	t.Run("get_store_comparison with limit", func(t *testing.T) {
		res := callTool(t, datasetSource(), "get_store_comparison", map[string]any{"limit": 1.0})
		require.False(t, res.IsError, resultText(t, res))

		var stores []schema.EnrichedStore
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &stores))
		require.Len(t, stores, 1)
		assert.Equal(t, "s2", stores[0].StoreID)
		assert.Equal(t, schema.HighBand, stores[0].Band)
	})
}

func TestMCPServerHandlers_Errors(t *testing.T) {
	t.Run("invalid granularity", func(t *testing.T) {
		res := callTool(t, &contract.MockRecordSource{}, "get_heatmap", map[string]any{"granularity": 15.0})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "granularity must be 30 or 60")
	})

	t.Run("invalid range", func(t *testing.T) {
		res := callTool(t, &contract.MockRecordSource{}, "get_insights", map[string]any{
			"start": "2025-03-10",
			"end":   "2025-03-01",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "cannot be after end date")
	})

	t.Run("source failure", func(t *testing.T) {
		src := &contract.MockRecordSource{}
		src.On("Load", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		res := callTool(t, src, "get_slot_productivity", nil)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "connection refused")
	})
}
