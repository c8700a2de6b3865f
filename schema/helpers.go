package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var weekdayAliases = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

// ParseWeekday parses an English weekday name or its common abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, fmt.Errorf("invalid weekday %q", s)
	}
	return wd, nil
}

// WeekdayIndex returns the Monday-first position of a weekday (Monday = 0, Sunday = 6).
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// SortWeekdays returns a deduplicated copy of days in Monday-first order.
func SortWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]struct{}, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return WeekdayIndex(out[i]) < WeekdayIndex(out[j]) })
	return out
}

// DayKey normalizes a time to its calendar day key (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format(DateFormat)
}

// MonthKey normalizes a time to its calendar month key (YYYY-MM).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// TruncateDay drops the clock part of t, keeping its location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
