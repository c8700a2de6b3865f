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

// PrintStoreResults outputs the cross-store comparison, dispatching based on the output format configured.
func PrintStoreResults(stores []schema.StoreProductivity, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, func(w io.Writer) error {
		return WriteStoreResults(w, stores, cfg, duration)
	}, func(w io.Writer) error {
		return parquet.Write(w, parquet.StoreRows(stores))
	})
}

// WriteStoreResults writes the cross-store comparison to w in the configured text format.
func WriteStoreResults(w io.Writer, stores []schema.StoreProductivity, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	enriched := schema.EnrichStores(stores, cfg.Insight.LowThreshold, cfg.Insight.HighThreshold)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, enriched)
	case schema.CSVOut:
		return writeCSVResultsForStores(w, enriched, fmtFloat, intFmt)
	default:
		return writeStoreTable(w, enriched, cfg, fmtFloat, intFmt, duration)
	}
}

func writeCSVResultsForStores(w io.Writer, stores []schema.EnrichedStore, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "store_id", "avg_monthly_productivity", "avg_monthly_hours", "total_revenue", "total_hours", "months", "days", "band"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range stores {
			rec := []string{
				strconv.Itoa(s.Rank),
				s.StoreID,
				fmtFloat(s.AvgMonthlyProductivity),
				fmtFloat(s.AvgMonthlyHours),
				fmtFloat(s.TotalRevenue),
				fmtFloat(s.TotalHours),
				fmt.Sprintf(intFmt, s.Months),
				fmt.Sprintf(intFmt, s.Days),
				string(s.Band),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record for store %s: %w", s.StoreID, err)
			}
		}
		return nil
	})
}

func writeStoreTable(w io.Writer, stores []schema.EnrichedStore, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Store", "€/h", "Band", "Hours/Month", "Revenue", "Hours", "Months", "Days"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	totalRevenue, totalHours := 0.0, 0.0
	for _, s := range stores {
		data = append(data, []string{
			strconv.Itoa(s.Rank),
			s.StoreID,
			fmtFloat(s.AvgMonthlyProductivity),
			bandText(s.Band, cfg),
			fmtFloat(s.AvgMonthlyHours),
			fmtFloat(s.TotalRevenue),
			fmtFloat(s.TotalHours),
			fmt.Sprintf(intFmt, s.Months),
			fmt.Sprintf(intFmt, s.Days),
		})
		totalRevenue += s.TotalRevenue
		totalHours += s.TotalHours
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Showing top %d stores (total revenue: €%s, total hours: %s)\n", len(stores), fmtFloat(totalRevenue), fmtFloat(totalHours))
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}
