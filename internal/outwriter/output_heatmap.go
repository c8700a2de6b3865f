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

// PrintHeatmapResults outputs the heatmap, dispatching based on the output format configured.
func PrintHeatmapResults(hm schema.Heatmap, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, func(w io.Writer) error {
		return WriteHeatmapResults(w, hm, cfg, duration)
	}, func(w io.Writer) error {
		return parquet.Write(w, parquet.HeatmapRows(hm))
	})
}

// WriteHeatmapResults writes the heatmap to w in the configured text format.
// JSON keeps absent cells as null; CSV lists present cells only.
func WriteHeatmapResults(w io.Writer, hm schema.Heatmap, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, hm)
	case schema.CSVOut:
		return writeCSVResultsForHeatmap(w, hm, fmtFloat, intFmt)
	default:
		return writeHeatmapTables(w, hm, cfg, fmtFloat, duration)
	}
}

func writeCSVResultsForHeatmap(w io.Writer, hm schema.Heatmap, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"day_of_week", "slot", "avg_revenue", "avg_hours", "productivity", "sample_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range hm.Rows {
			for _, c := range row.Cells {
				if c == nil {
					continue
				}
				rec := []string{
					c.DayOfWeek,
					c.Slot,
					fmtFloat(c.AvgRevenue),
					fmtFloat(c.AvgHours),
					fmtFloat(c.Productivity),
					fmt.Sprintf(intFmt, c.SampleCount),
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record for %s %s: %w", c.DayOfWeek, c.Slot, err)
				}
			}
		}
		return nil
	})
}

// writeHeatmapTables renders productivity per cell. Slots that do not fit the terminal
// width continue in further tables.
func writeHeatmapTables(w io.Writer, hm schema.Heatmap, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	perTable := GetMaxHeatmapColumns(cfg)
	from := 0
	for {
		to := min(from+perTable, len(hm.Slots))

		table := tablewriter.NewWriter(w)
		table.Header(append([]string{"Day"}, hm.Slots[from:to]...))
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, row := range hm.Rows {
			line := []string{row.Day}
			for _, c := range row.Cells[from:to] {
				line = append(line, heatmapCellText(c, cfg, fmtFloat))
			}
			data = append(data, line)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if to >= len(hm.Slots) {
			break
		}
		from = to
	}

	present := 0
	for _, row := range hm.Rows {
		for _, c := range row.Cells {
			if c != nil {
				present++
			}
		}
	}
	_, _ = fmt.Fprintf(w, "Showing €/h for %d slots x %d days (%d cells with data, %s = no data)\n",
		len(hm.Slots), len(hm.Rows), present, schema.EmptyBand)
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

func heatmapCellText(c *schema.HeatmapCell, cfg *contract.Config, fmtFloat func(float64) string) string {
	if c == nil {
		return string(schema.EmptyBand)
	}
	text := fmtFloat(c.Productivity)
	if c.AvgHours <= 0 {
		text = "€" + fmtFloat(c.AvgRevenue) + " /0h"
	}
	if !cfg.UseColors {
		return text
	}
	return colorize(text, schema.GetBand(c.Productivity, c.AvgHours, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold))
}
