package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/slotpulse/core"
	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.RecordSource
	mgr     contract.CacheManager
	now     func() time.Time
}

// requestConfig clones the base config and applies the request's filter arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateQuery(cfg, contract.QueryOverrides{
		Stores:      request.GetString("stores", ""),
		Start:       request.GetString("start", ""),
		End:         request.GetString("end", ""),
		Weekdays:    request.GetString("weekdays", ""),
		Granularity: request.GetInt("granularity", 0),
		ShiftTypes:  request.GetString("shift_types", ""),
		Limit:       request.GetInt("limit", 0),
	}, h.now())
	return cfg, err
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSlotProductivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, _, err := core.GetReport(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return jsonResult(schema.SlotReport{
		Summary: report.Summary,
		Slots:   schema.EnrichSlots(report.Slots, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold),
	})
}

func (h *toolHandler) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	hm, _, err := core.GetHeatmapResults(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap failed: %v", err)), nil
	}
	return jsonResult(hm)
}

func (h *toolHandler) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	insights, _, err := core.GetInsightResults(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insight generation failed: %v", err)), nil
	}
	return jsonResult(insights)
}

func (h *toolHandler) handleGetStoreComparison(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	stores, _, err := core.GetStoreResults(core.WithSuppressHeader(ctx), cfg, h.src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store comparison failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichStores(stores, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold))
}
