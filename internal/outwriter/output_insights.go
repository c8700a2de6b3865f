package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/parquet"
	"github.com/huangsam/slotpulse/schema"
)

// PrintInsightResults outputs staffing insights, dispatching based on the output format configured.
func PrintInsightResults(insights []schema.Insight, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, func(w io.Writer) error {
		return WriteInsightResults(w, insights, cfg, duration)
	}, func(w io.Writer) error {
		return parquet.Write(w, parquet.InsightRows(insights))
	})
}

// WriteInsightResults writes staffing insights to w in the configured text format.
// CSV has one row per affected cell.
func WriteInsightResults(w io.Writer, insights []schema.Insight, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if insights == nil {
			insights = []schema.Insight{}
		}
		return writeJSON(w, insights)
	case schema.CSVOut:
		return writeCSVResultsForInsights(w, insights, fmtFloat, intFmt)
	default:
		return writeInsightText(w, insights, cfg, fmtFloat, duration)
	}
}

func writeCSVResultsForInsights(w io.Writer, insights []schema.Insight, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"insight", "kind", "estimated_impact", "store_id", "day", "slot",
		"avg_revenue", "avg_hours", "productivity", "sample_count", "description", "suggested_action",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, in := range insights {
			for _, c := range in.AffectedCells {
				rec := []string{
					strconv.Itoa(i + 1),
					string(in.Kind),
					in.EstimatedImpact.StringFixed(2),
					c.StoreID,
					c.Day,
					c.Slot,
					fmtFloat(c.AvgRevenue),
					fmtFloat(c.AvgHours),
					fmtFloat(c.Productivity),
					fmt.Sprintf(intFmt, c.SampleCount),
					in.Description,
					in.SuggestedAction,
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record for insight %d: %w", i+1, err)
				}
			}
		}
		return nil
	})
}

func writeInsightText(w io.Writer, insights []schema.Insight, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(insights) == 0 {
		_, _ = fmt.Fprintln(w, "✅ No staffing insights for the selected range")
	}

	for i, in := range insights {
		_, _ = fmt.Fprintf(w, "%d. %s %s\n", i+1, insightIcon(in.Kind), in.Description)
		_, _ = fmt.Fprintf(w, "   → %s\n", in.SuggestedAction)
		_, _ = fmt.Fprintf(w, "   💶 Estimated impact: €%s per month\n", in.EstimatedImpact.StringFixed(2))

		table := tablewriter.NewWriter(w)
		if in.Kind == schema.CrossStoreGap {
			table.Header([]string{"Store", "€/h", "Hours/Month", "Revenue/Month", "Days"})
		} else {
			table.Header([]string{"Day", "Slot", "€/h", "Avg Revenue", "Avg Hours", "Samples"})
		}
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, c := range in.AffectedCells {
			band := schema.GetBand(c.Productivity, c.AvgHours, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold)
			prod := fmtFloat(c.Productivity)
			if cfg.UseColors {
				prod = colorize(prod, band)
			}
			if in.Kind == schema.CrossStoreGap {
				data = append(data, []string{c.StoreID, prod, fmtFloat(c.AvgHours), fmtFloat(c.AvgRevenue), strconv.Itoa(c.SampleCount)})
				continue
			}
			data = append(data, []string{c.Day, c.Slot, prod, fmtFloat(c.AvgRevenue), fmtFloat(c.AvgHours), sampleText(c.SampleCount)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(w, "Showing %d insights (low < €%s/h, high > €%s/h, hours %s-%s)\n",
		len(insights), fmtFloat(cfg.Insight.LowThreshold), fmtFloat(cfg.Insight.HighThreshold),
		cfg.Insight.OpenTime, cfg.Insight.CloseTime)
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

func insightIcon(kind schema.InsightKind) string {
	switch kind {
	case schema.LowProductivity:
		return "📉"
	case schema.HighProductivity:
		return "📈"
	default:
		return "🏬"
	}
}

func colorize(text string, band schema.Band) string {
	switch band {
	case schema.LowBand:
		return contract.LowColor.Sprint(text)
	case schema.HighBand:
		return contract.HighColor.Sprint(text)
	case schema.NormalBand:
		return contract.NormalColor.Sprint(text)
	default:
		return contract.EmptyColor.Sprint(text)
	}
}

func sampleText(samples int) string {
	if samples == 1 {
		return "1 day"
	}
	return strconv.Itoa(samples) + " days"
}
