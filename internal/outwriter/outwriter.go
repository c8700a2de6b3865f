// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSlots prints the slot productivity table using the configured output format.
func (ow *OutWriter) WriteSlots(slots []schema.AggregatedSlotMetric, summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	return PrintSlotResults(slots, summary, cfg, duration)
}

// WriteHeatmap prints the weekday by slot heatmap using the configured output format.
func (ow *OutWriter) WriteHeatmap(hm schema.Heatmap, cfg *contract.Config, duration time.Duration) error {
	return PrintHeatmapResults(hm, cfg, duration)
}

// WriteInsights prints staffing insights using the configured output format.
func (ow *OutWriter) WriteInsights(insights []schema.Insight, cfg *contract.Config, duration time.Duration) error {
	return PrintInsightResults(insights, cfg, duration)
}

// WriteStores prints the cross-store comparison using the configured output format.
func (ow *OutWriter) WriteStores(stores []schema.StoreProductivity, cfg *contract.Config, duration time.Duration) error {
	return PrintStoreResults(stores, cfg, duration)
}

// WriteDaily prints the daily series using the configured output format.
func (ow *OutWriter) WriteDaily(daily []schema.DailyMetric, cfg *contract.Config, duration time.Duration) error {
	return PrintDailyResults(daily, cfg, duration)
}

// LogRunHeader prints a concise, 2-line header for a run. Machine-readable
// output formats get no header.
func LogRunHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return
	}

	stores := "all"
	if len(cfg.StoreIDs) > 0 {
		stores = strings.Join(cfg.StoreIDs, ", ")
	}

	// Line 1: what is being analyzed
	fmt.Printf("🔎 Stores: %s (Granularity: %dm)\n", stores, cfg.Granularity)

	// Line 2: the date range
	fmt.Printf("📅 Range: %s → %s\n", formatBound(cfg.StartTime, "first record"), formatBound(cfg.EndTime, "last record"))
}

func formatBound(t time.Time, open string) string {
	if t.IsZero() {
		return open
	}
	return t.Format(schema.DateFormat)
}

// GetTerminalWidth returns the width available for tables: the configured override,
// else the detected terminal width, else a conservative 80 columns.
func GetTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxHeatmapColumns calculates how many slot columns fit next to the day column
// in one heatmap table.
func GetMaxHeatmapColumns(cfg *contract.Config) int {
	const (
		dayColumnWidth  = 14 // "Wednesday" with borders/padding
		slotColumnWidth = 14 // "09:00-09:30" with borders/padding
	)
	columns := (GetTerminalWidth(cfg) - dayColumnWidth) / slotColumnWidth
	if columns < 1 {
		return 1
	}
	return columns
}
