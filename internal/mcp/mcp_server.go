// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/slotpulse/internal/contract"
)

// filterOptions are the arguments every analysis tool accepts.
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("stores", mcp.Description("Comma-separated store IDs (all stores if not specified).")),
		mcp.WithString("start", mcp.Description("First day to include: YYYY-MM-DD, RFC3339 or 'N days ago'.")),
		mcp.WithString("end", mcp.Description("Last day to include: YYYY-MM-DD, RFC3339 or 'N days ago'.")),
		mcp.WithString("weekdays", mcp.Description("Comma-separated weekdays to include (e.g. 'sat,sun').")),
		mcp.WithNumber("granularity", mcp.Description("Slot width in minutes (30 or 60). Defaults to 30.")),
		mcp.WithString("shift_types", mcp.Description("Comma-separated shift types whose hours count as labor.")),
	}
}

// NewMCPServer initializes and configures the slotpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Slotpulse Productivity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
		mgr:     mgr,
		now:     time.Now,
	}

	// --- 1. Tool: get_slot_productivity ---
	s.AddTool(mcp.NewTool("get_slot_productivity", append([]mcp.ToolOption{
		mcp.WithDescription("Average revenue, staffed hours and revenue per labor-hour for every time slot, with run totals and the peak slot."),
	}, filterOptions()...)...), h.handleGetSlotProductivity)

	// --- 2. Tool: get_heatmap ---
	s.AddTool(mcp.NewTool("get_heatmap", append([]mcp.ToolOption{
		mcp.WithDescription("Weekday by time slot productivity matrix. Cells without data are null."),
	}, filterOptions()...)...), h.handleGetHeatmap)

	// --- 3. Tool: get_insights ---
	s.AddTool(mcp.NewTool("get_insights", append([]mcp.ToolOption{
		mcp.WithDescription("Staffing recommendations: understaffed and overstaffed slots and productivity gaps between stores, with estimated monthly impact."),
	}, filterOptions()...)...), h.handleGetInsights)

	// --- 4. Tool: get_store_comparison ---
	s.AddTool(mcp.NewTool("get_store_comparison", append([]mcp.ToolOption{
		mcp.WithDescription("Stores ranked by average monthly revenue per labor-hour."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of stores returned.")),
	}, filterOptions()...)...), h.handleGetStoreComparison)

	return s
}

// StartMCPServer starts the slotpulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, src, mgr)
	return server.ServeStdio(s)
}
