package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/slotpulse/core"
	"github.com/huangsam/slotpulse/internal/contract"
)

// runReport returns a cobra Run function that executes one report view.
func runReport(exec core.ExecutorFunc, what string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, records, cacheManager); err != nil {
			contract.LogFatal("Cannot run "+what, err)
		}
	}
}

// slotsCmd shows the intraday productivity curve.
var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show revenue per staffed hour for every time slot of the day.",
	Long: `Average revenue and staffed hours per time slot across all selected days and stores.

Each slot shows:
- Average revenue and average staffed hours
- Revenue per staffed hour (productivity)
- A band label: Low (overstaffed), Normal or High (understaffed)

The footer reports total revenue, total hours and the peak slot.

Examples:
  # Half-hour curve for two stores during March
  slotpulse slots --stores s1,s2 --start 2025-03-01 --end 2025-03-31

  # Hourly curve for weekends only
  slotpulse slots --granularity 60 --weekdays sat,sun

  # Export for a spreadsheet
  slotpulse slots --output csv --output-file slots.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport(core.ExecuteSlots, "slot analysis"),
}

// heatmapCmd shows the weekday by slot matrix.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show productivity per weekday and time slot.",
	Long: `Build a 7-day by time-slot matrix of revenue per staffed hour.

Rows run Monday through Sunday. Empty cells mean no revenue and no staffing
were observed for that weekday and slot. Wide matrices are split into several
tables to fit the terminal.

Examples:
  # Hourly heatmap for the last quarter
  slotpulse heatmap --granularity 60 --lookback "3 months"

  # Full matrix as JSON
  slotpulse heatmap --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport(core.ExecuteHeatmap, "heatmap analysis"),
}

// insightsCmd shows the staffing recommendations.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Suggest staffing changes from the productivity heatmap.",
	Long: `Turn the heatmap and store comparison into staffing recommendations.

Rules:
- Low productivity: slots below --low-threshold inside the operating window
- High productivity: slots above --high-threshold inside the operating window
- Cross-store gap: best and worst store differ by more than --gap-threshold

Each insight carries its evidence and an estimated monthly impact.

Examples:
  # Default rules
  slotpulse insights

  # Stricter thresholds and a late-night window
  slotpulse insights --low-threshold 40 --high-threshold 90 --open-time 17:00 --close-time 02:00`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport(core.ExecuteInsights, "insight analysis"),
}

// storesCmd compares stores.
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Rank stores by average monthly productivity.",
	Long: `Compare stores by revenue per staffed hour, averaged across calendar months.

Examples:
  # Top 10 stores this year
  slotpulse stores --start 2025-01-01 --limit 10`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport(core.ExecuteStores, "store comparison"),
}

// dailyCmd shows the day by day series.
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show revenue, hours and productivity per calendar day.",
	Long: `Show the most recent calendar days with their revenue, staffed hours and productivity.

Examples:
  # Last two weeks
  slotpulse daily --limit 14`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport(core.ExecuteDaily, "daily analysis"),
}
