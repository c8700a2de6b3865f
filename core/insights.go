package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/core/algo"
	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

const (
	maxLowCells           = 5
	maxHighCells          = 3
	fallbackWeeksPerMonth = 4
)

// GenerateInsights turns a heatmap and a store comparison into staffing recommendations.
// Insights are emitted in a fixed order: low productivity, high productivity, cross-store gap.
// A rule without supporting evidence emits nothing.
func GenerateInsights(hm schema.Heatmap, stores []schema.StoreProductivity, ic schema.InsightConfig) []schema.Insight {
	if ic.WeeksPerMonth <= 0 {
		ic.WeeksPerMonth = fallbackWeeksPerMonth
	}

	var low, high []schema.HeatmapCell
	for _, c := range openCells(hm, ic) {
		if c.AvgHours <= 0 || c.SampleCount < ic.MinSampleCount {
			continue
		}
		switch {
		case c.Productivity < ic.LowThreshold:
			low = append(low, c)
		case c.Productivity > ic.HighThreshold:
			high = append(high, c)
		}
	}

	insights := make([]schema.Insight, 0, 3)
	if in, ok := lowInsight(algo.RankCells(low, true, maxLowCells), ic); ok {
		insights = append(insights, in)
	}
	if in, ok := highInsight(algo.RankCells(high, false, maxHighCells), ic); ok {
		insights = append(insights, in)
	}
	if in, ok := crossStoreInsight(stores, ic); ok {
		insights = append(insights, in)
	}
	return insights
}

// openCells returns the present cells whose slot starts inside the operating-hours window.
// An unparsable window bound is treated as no restriction.
func openCells(hm schema.Heatmap, ic schema.InsightConfig) []schema.HeatmapCell {
	open, errOpen := bucket.ParseClock(ic.OpenTime)
	closing, errClose := bucket.ParseClock(ic.CloseTime)
	if errOpen != nil || errClose != nil {
		open, closing = 0, 0
	}

	var out []schema.HeatmapCell
	for _, c := range Cells(hm) {
		start, err := bucket.LabelStart(c.Slot)
		if err != nil || !bucket.InWindow(start, open, closing) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func lowInsight(cells []schema.HeatmapCell, ic schema.InsightConfig) (schema.Insight, bool) {
	if len(cells) == 0 {
		return schema.Insight{}, false
	}
	// One staffed hour removed per cell, every week.
	impact := money(float64(len(cells)) * ic.HourlyCost * ic.WeeksPerMonth)
	desc := fmt.Sprintf("%d slot(s) below %s/h: %s", len(cells), euro(ic.LowThreshold), describeCells(cells))
	return schema.Insight{
		Kind:            schema.LowProductivity,
		Description:     desc,
		AffectedCells:   affectedCells(cells),
		SuggestedAction: "Reduce staffing by one person-hour in these slots or shift the hours to busier periods",
		EstimatedImpact: impact,
	}, true
}

func highInsight(cells []schema.HeatmapCell, ic schema.InsightConfig) (schema.Insight, bool) {
	if len(cells) == 0 {
		return schema.Insight{}, false
	}
	margin := 0.0
	for _, c := range cells {
		margin += c.Productivity - ic.HighThreshold
	}
	desc := fmt.Sprintf("%d slot(s) above %s/h: %s", len(cells), euro(ic.HighThreshold), describeCells(cells))
	return schema.Insight{
		Kind:            schema.HighProductivity,
		Description:     desc,
		AffectedCells:   affectedCells(cells),
		SuggestedAction: "Add one person-hour in these slots to capture demand that is likely being lost",
		EstimatedImpact: money(margin * ic.WeeksPerMonth),
	}, true
}

func crossStoreInsight(stores []schema.StoreProductivity, ic schema.InsightConfig) (schema.Insight, bool) {
	var active []schema.StoreProductivity
	for _, s := range stores {
		if s.AvgMonthlyProductivity > 0 {
			active = append(active, s)
		}
	}
	if len(active) < 2 {
		return schema.Insight{}, false
	}
	ranked := algo.RankStores(active, 0)
	best, worst := ranked[0], ranked[len(ranked)-1]

	gap := (best.AvgMonthlyProductivity - worst.AvgMonthlyProductivity) / worst.AvgMonthlyProductivity
	if gap <= ic.GapThresholdPct {
		return schema.Insight{}, false
	}

	impact := money((best.AvgMonthlyProductivity - worst.AvgMonthlyProductivity) * worst.AvgMonthlyHours)
	desc := fmt.Sprintf("Store %s averages %s/h against %s/h at store %s (%.1f%% gap over %.1f staffed hours per month)",
		best.StoreID, euro(best.AvgMonthlyProductivity),
		euro(worst.AvgMonthlyProductivity), worst.StoreID,
		gap*100, worst.AvgMonthlyHours)
	action := fmt.Sprintf("Review the staffing pattern of store %s against store %s", worst.StoreID, best.StoreID)
	return schema.Insight{
		Kind:            schema.CrossStoreGap,
		Description:     desc,
		AffectedCells:   []schema.AffectedCell{storeCell(best), storeCell(worst)},
		SuggestedAction: action,
		EstimatedImpact: impact,
	}, true
}

func describeCells(cells []schema.HeatmapCell) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		parts = append(parts, fmt.Sprintf("%s %s at %s/h (%s revenue, %.1f h staffed)",
			c.DayOfWeek, c.Slot, euro(c.Productivity), euro(c.AvgRevenue), c.AvgHours))
	}
	return strings.Join(parts, "; ")
}

func affectedCells(cells []schema.HeatmapCell) []schema.AffectedCell {
	out := make([]schema.AffectedCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, schema.AffectedCell{
			Day:          c.DayOfWeek,
			Slot:         c.Slot,
			AvgRevenue:   c.AvgRevenue,
			AvgHours:     c.AvgHours,
			Productivity: c.Productivity,
			SampleCount:  c.SampleCount,
		})
	}
	return out
}

func storeCell(s schema.StoreProductivity) schema.AffectedCell {
	return schema.AffectedCell{
		StoreID:      s.StoreID,
		AvgRevenue:   agg.SafeDiv(s.TotalRevenue, float64(s.Months)),
		AvgHours:     s.AvgMonthlyHours,
		Productivity: s.AvgMonthlyProductivity,
		SampleCount:  s.Days,
	}
}

// money rounds a currency amount to cents.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func euro(v float64) string {
	return "€" + money(v).StringFixed(2)
}
