// Package core has the slot productivity engine: filtering, aggregation, insights and caching.
package core

import (
	"context"
	"time"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/outwriter"
	"github.com/huangsam/slotpulse/schema"
)

// ExecutorFunc defines the function signature for executing the different report views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error

// GetReport runs the engine for cfg and returns the complete report.
func GetReport(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (*schema.Report, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader(cfg)
	}
	report, err := cachedReport(ctx, cfg, src, mgr)
	if err != nil {
		return nil, 0, err
	}
	return report, time.Since(start), nil
}

// GetSlotResults returns the per-slot productivity table.
func GetSlotResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) ([]schema.AggregatedSlotMetric, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return nil, 0, err
	}
	return report.Slots, duration, nil
}

// GetHeatmapResults returns the weekday by slot heatmap.
func GetHeatmapResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (schema.Heatmap, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return schema.Heatmap{}, 0, err
	}
	return report.Heatmap, duration, nil
}

// GetInsightResults returns the staffing insights.
func GetInsightResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) ([]schema.Insight, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return nil, 0, err
	}
	return report.Insights, duration, nil
}

// GetStoreResults returns the top stores by monthly productivity.
func GetStoreResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) ([]schema.StoreProductivity, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return nil, 0, err
	}
	stores := report.Stores
	if cfg.ResultLimit > 0 && len(stores) > cfg.ResultLimit {
		stores = stores[:cfg.ResultLimit]
	}
	return stores, duration, nil
}

// GetDailyResults returns the most recent days of the daily series.
func GetDailyResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) ([]schema.DailyMetric, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return nil, 0, err
	}
	return latestDaily(report.Daily, cfg.ResultLimit), duration, nil
}

// GetSummaryResults returns the headline numbers of a run.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (schema.Summary, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return schema.Summary{}, 0, err
	}
	return report.Summary, duration, nil
}

// ExecuteSlots prints the per-slot productivity table.
// It serves as the main entry point for the 'slots' command.
func ExecuteSlots(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	report, duration, err := GetReport(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSlots(report.Slots, report.Summary, cfg, duration)
}

// ExecuteHeatmap prints the weekday by slot heatmap.
func ExecuteHeatmap(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	hm, duration, err := GetHeatmapResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHeatmap(hm, cfg, duration)
}

// ExecuteInsights prints the staffing insights.
func ExecuteInsights(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	insights, duration, err := GetInsightResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteInsights(insights, cfg, duration)
}

// ExecuteStores prints the cross-store comparison.
func ExecuteStores(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	stores, duration, err := GetStoreResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStores(stores, cfg, duration)
}

// ExecuteDaily prints the daily series.
func ExecuteDaily(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	daily, duration, err := GetDailyResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDaily(daily, cfg, duration)
}
