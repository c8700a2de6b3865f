package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/slotpulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the slotpulse MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query slot productivity, heatmaps, insights and store comparisons.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so reports must never print their header here.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, records, cacheManager)
	},
}
