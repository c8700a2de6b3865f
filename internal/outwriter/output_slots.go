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

// PrintSlotResults outputs the slot productivity table, dispatching based on the output format configured.
func PrintSlotResults(slots []schema.AggregatedSlotMetric, summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichSlots(slots, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold)
	return dispatch(cfg, func(w io.Writer) error {
		return WriteSlotResults(w, slots, summary, cfg, duration)
	}, func(w io.Writer) error {
		return parquet.Write(w, parquet.SlotRows(enriched))
	})
}

// WriteSlotResults writes the slot productivity table to w in the configured text format.
func WriteSlotResults(w io.Writer, slots []schema.AggregatedSlotMetric, summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	enriched := schema.EnrichSlots(slots, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, schema.SlotReport{Summary: summary, Slots: enriched})
	case schema.CSVOut:
		return writeCSVResultsForSlots(w, enriched, fmtFloat)
	default:
		return writeSlotTable(w, enriched, summary, cfg, fmtFloat, duration)
	}
}

func writeCSVResultsForSlots(w io.Writer, slots []schema.EnrichedSlotMetric, fmtFloat func(float64) string) error {
	header := []string{"slot", "avg_revenue", "avg_hours", "revenue_per_hour", "band"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range slots {
			rec := []string{s.Slot, fmtFloat(s.AvgRevenue), fmtFloat(s.AvgHours), fmtFloat(s.RevenuePerHour), string(s.Band)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record for slot %s: %w", s.Slot, err)
			}
		}
		return nil
	})
}

func writeSlotTable(w io.Writer, slots []schema.EnrichedSlotMetric, summary schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Slot", "Avg Revenue", "Avg Hours", "€/h", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range slots {
		data = append(data, []string{
			strconv.Itoa(s.Rank),
			s.Slot,
			fmtFloat(s.AvgRevenue),
			fmtFloat(s.AvgHours),
			fmtFloat(s.RevenuePerHour),
			bandText(s.Band, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	peak := summary.PeakSlot
	if peak == "" {
		peak = "-"
	}
	_, _ = fmt.Fprintf(w, "Showing %d slots (revenue: €%s, hours: %s, productivity: €%s/h, peak slot: %s)\n",
		len(slots), fmtFloat(summary.TotalRevenue), fmtFloat(summary.TotalHours), fmtFloat(summary.AvgProductivity), peak)
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}
