package core

import (
	"github.com/huangsam/slotpulse/schema"
)

// BuildReport derives every result of one run from a snapshot. The report is complete;
// result limits are applied by the callers that present it.
func BuildReport(snap *schema.Snapshot, ic schema.InsightConfig) *schema.Report {
	g := snap.Filter.Granularity
	if g == 0 {
		g = schema.HalfHour
	}

	slots := Compose(snap.Shifts, snap.Revenue, g, snap.Filter.Weekdays)
	heatmap := BuildHeatmap(snap.Shifts, snap.Revenue, g)
	stores := CompareStores(snap.Shifts, snap.Revenue)

	return &schema.Report{
		Filter:   snap.Filter,
		Summary:  Summarize(snap.Shifts, snap.Revenue, slots),
		Slots:    slots,
		Heatmap:  heatmap,
		Daily:    DailySeries(snap.Shifts, snap.Revenue),
		Stores:   stores,
		Insights: GenerateInsights(heatmap, stores, ic),
		Dropped:  snap.Dropped,
	}
}

// latestDaily keeps the last limit days of a daily series, oldest first.
func latestDaily(daily []schema.DailyMetric, limit int) []schema.DailyMetric {
	if limit > 0 && len(daily) > limit {
		return daily[len(daily)-limit:]
	}
	return daily
}
