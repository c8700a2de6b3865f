//go:build basic

package integration

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

// TestFileBackend reads the fixture straight from the JSON file without any database.
func TestFileBackend(t *testing.T) {
	isolateHome(t)
	records := writeDataset(t)
	common := []string{"--records-backend", "file", "--records-file", records, "--cache-backend", "none"}

	t.Run("slots", func(t *testing.T) {
		out := mustRun(t, append([]string{"slots", "--output", "json"}, common...)...)
		assertSlotReport(t, out)
	})

	t.Run("hourly slots for one store", func(t *testing.T) {
		out := mustRun(t, append([]string{"slots", "--output", "json", "--granularity", "60", "--stores", "s2"}, common...)...)
		var report schema.SlotReport
		require.NoError(t, json.Unmarshal([]byte(out), &report), out)
		require.Len(t, report.Slots, 1)
		assert.Equal(t, "12:00", report.Slots[0].Slot)
		assert.InDelta(t, 100, report.Slots[0].RevenuePerHour, 1e-9)
	})

	t.Run("stores", func(t *testing.T) {
		out := mustRun(t, append([]string{"stores", "--output", "json"}, common...)...)
		var stores []schema.EnrichedStore
		require.NoError(t, json.Unmarshal([]byte(out), &stores), out)
		require.Len(t, stores, 2)
		assert.Equal(t, "s2", stores[0].StoreID)
	})

	t.Run("insights", func(t *testing.T) {
		out := mustRun(t, append([]string{"insights", "--output", "json"}, common...)...)
		var insights []schema.Insight
		require.NoError(t, json.Unmarshal([]byte(out), &insights), out)
		require.NotEmpty(t, insights)
		assert.Equal(t, schema.CrossStoreGap, insights[len(insights)-1].Kind)
	})

	t.Run("text output", func(t *testing.T) {
		out := mustRun(t, append([]string{"heatmap", "--color", "no"}, common...)...)
		assert.Contains(t, out, "Monday")
	})

	t.Run("invalid granularity", func(t *testing.T) {
		_, err := runSlotpulse(t, append([]string{"slots", "--granularity", "15"}, common...)...)
		assert.Error(t, err)
	})
}

// TestSQLiteBackend imports the fixture into SQLite and serves reports through the cache.
func TestSQLiteBackend(t *testing.T) {
	isolateHome(t)
	records := writeDataset(t)
	dir := t.TempDir()
	t.Setenv("SLOTPULSE_RECORDS_DB_CONNECT", filepath.Join(dir, "records.db"))
	t.Setenv("SLOTPULSE_CACHE_DB_CONNECT", filepath.Join(dir, "cache.db"))

	out := mustRun(t, "records", "import", records)
	assert.Contains(t, out, "Imported 3 revenue records and 3 shifts")

	out = mustRun(t, "records", "status")
	assert.Contains(t, out, "Stores: s1, s2")
	assert.Contains(t, out, "Date Range: 2025-03-03 → 2025-03-04")

	// Second run is served from the cache and must match the first
	first := mustRun(t, "slots", "--output", "json")
	assertSlotReport(t, first)
	second := mustRun(t, "slots", "--output", "json")
	assert.JSONEq(t, first, second)

	out = mustRun(t, "cache", "status")
	assert.Contains(t, out, "Total Entries: 1")

	mustRun(t, "cache", "clear")
	mustRun(t, "records", "migrate", "--target-version", "0")
	out = mustRun(t, "records", "migrate")
	assert.Contains(t, out, "to version 2")
}
