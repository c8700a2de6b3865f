package core

import (
	"github.com/huangsam/slotpulse/core/agg"
	"github.com/huangsam/slotpulse/core/algo"
	"github.com/huangsam/slotpulse/schema"
)

type storeMonth struct {
	revenue float64
	hours   float64
}

// CompareStores summarizes each store for cross-store comparison. Monthly productivity
// is revenue over hours within a calendar month; the store figure averages it across
// the months in which the store had staffed hours. Stores are sorted by that average,
// highest first.
func CompareStores(shifts []schema.ShiftRecord, revenue []schema.RevenueRecord) []schema.StoreProductivity {
	months := make(map[string]map[string]*storeMonth) // store -> month -> totals
	days := make(map[string]map[string]struct{})       // store -> distinct days

	get := func(store, month string) *storeMonth {
		byMonth, ok := months[store]
		if !ok {
			byMonth = make(map[string]*storeMonth)
			months[store] = byMonth
		}
		m, ok := byMonth[month]
		if !ok {
			m = &storeMonth{}
			byMonth[month] = m
		}
		return m
	}
	markDay := func(store, day string) {
		set, ok := days[store]
		if !ok {
			set = make(map[string]struct{})
			days[store] = set
		}
		set[day] = struct{}{}
	}

	for _, r := range revenue {
		get(r.StoreID, schema.MonthKey(r.Date)).revenue += recordRevenue(r)
		markDay(r.StoreID, schema.DayKey(r.Date))
	}
	for _, s := range shifts {
		get(s.StoreID, schema.MonthKey(s.Date)).hours += shiftHours(s)
		markDay(s.StoreID, schema.DayKey(s.Date))
	}

	out := make([]schema.StoreProductivity, 0, len(months))
	for _, store := range schema.SortedKeys(months) {
		sp := schema.StoreProductivity{StoreID: store, Days: len(days[store])}
		staffedMonths := 0
		prodSum, hoursSum := 0.0, 0.0
		for _, month := range schema.SortedKeys(months[store]) {
			m := months[store][month]
			sp.TotalRevenue += m.revenue
			sp.TotalHours += m.hours
			if m.hours > 0 {
				staffedMonths++
				prodSum += m.revenue / m.hours
				hoursSum += m.hours
			}
		}
		sp.Months = staffedMonths
		sp.AvgMonthlyProductivity = agg.SafeDiv(prodSum, float64(staffedMonths))
		sp.AvgMonthlyHours = agg.SafeDiv(hoursSum, float64(staffedMonths))
		out = append(out, sp)
	}

	return algo.RankStores(out, 0)
}
