package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/parquet"
	"github.com/huangsam/slotpulse/schema"
)

// PrintDailyResults outputs the daily series, dispatching based on the output format configured.
func PrintDailyResults(daily []schema.DailyMetric, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, func(w io.Writer) error {
		return WriteDailyResults(w, daily, cfg, duration)
	}, func(w io.Writer) error {
		return parquet.Write(w, parquet.DailyRows(daily))
	})
}

// WriteDailyResults writes the daily series to w in the configured text format.
func WriteDailyResults(w io.Writer, daily []schema.DailyMetric, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if daily == nil {
			daily = []schema.DailyMetric{}
		}
		return writeJSON(w, daily)
	case schema.CSVOut:
		return writeCSVResultsForDaily(w, daily, fmtFloat)
	default:
		return writeDailyTable(w, daily, cfg, fmtFloat, duration)
	}
}

func writeCSVResultsForDaily(w io.Writer, daily []schema.DailyMetric, fmtFloat func(float64) string) error {
	header := []string{"date", "day_of_week", "revenue", "hours", "productivity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range daily {
			rec := []string{d.Date.Format(schema.DateFormat), d.DayOfWeek, fmtFloat(d.Revenue), fmtFloat(d.Hours), fmtFloat(d.Productivity)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record for %s: %w", d.Date.Format(schema.DateFormat), err)
			}
		}
		return nil
	})
}

func writeDailyTable(w io.Writer, daily []schema.DailyMetric, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Day", "Revenue", "Hours", "€/h", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range daily {
		band := schema.GetBand(d.Productivity, d.Hours, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold)
		data = append(data, []string{
			d.Date.Format(schema.DateFormat),
			d.DayOfWeek,
			fmtFloat(d.Revenue),
			fmtFloat(d.Hours),
			fmtFloat(d.Productivity),
			bandText(band, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Showing %d most recent days\n", len(daily))
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}
