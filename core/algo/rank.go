// Package algo ranks heatmap cells and stores for insight generation and output.
package algo

import (
	"sort"

	"github.com/huangsam/slotpulse/schema"
)

// RankCells sorts cells by productivity and returns the top 'limit' cells. Ascending puts
// the least productive cell first. Ties keep the input order, which is Monday-first and
// slot ascending when the cells come from a heatmap. A limit of 0 or less keeps all cells.
func RankCells(cells []schema.HeatmapCell, ascending bool, limit int) []schema.HeatmapCell {
	sort.SliceStable(cells, func(i, j int) bool {
		if ascending {
			return cells[i].Productivity < cells[j].Productivity
		}
		return cells[i].Productivity > cells[j].Productivity
	})
	if limit > 0 && len(cells) > limit {
		return cells[:limit]
	}
	return cells
}

// RankStores sorts stores by their average monthly productivity in descending order
// and returns the top 'limit' stores. Ties are broken by store ID.
// A limit of 0 or less keeps all stores.
func RankStores(stores []schema.StoreProductivity, limit int) []schema.StoreProductivity {
	sort.SliceStable(stores, func(i, j int) bool {
		if stores[i].AvgMonthlyProductivity != stores[j].AvgMonthlyProductivity {
			return stores[i].AvgMonthlyProductivity > stores[j].AvgMonthlyProductivity
		}
		return stores[i].StoreID < stores[j].StoreID
	})
	if limit > 0 && len(stores) > limit {
		return stores[:limit]
	}
	return stores
}
