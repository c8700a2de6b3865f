package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/slotpulse/schema"
)

// Define the regular expression to capture "N [units] ago"
// e.g., "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d{1,5})\s+(year|month|week|day)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 months ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
}

// Define the regular expression to capture "N [units]".
var lookbackDurationRe = regexp.MustCompile(`^(\d{1,5})\s+(year|month|week|day)s?$`)

// ParseLookback converts strings like "3 months" or "90 days" into a calendar offset
// of years, months and days. Go durations such as "720h" are also accepted and rounded
// down to whole days.
func ParseLookback(s string) (years, months, days int, err error) {
	s = strings.TrimSpace(s)

	if d, derr := time.ParseDuration(s); derr == nil {
		days = int(d / (24 * time.Hour))
		if days <= 0 {
			return 0, 0, 0, errors.New("lookback must be at least one day")
		}
		return 0, 0, days, nil
	}

	s = strings.ToLower(s)
	matches := lookbackDurationRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, 0, 0, fmt.Errorf("invalid lookback format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	if value == 0 {
		return 0, 0, 0, errors.New("zero lookback is not useful")
	}

	switch matches[2] {
	case "year":
		return value, 0, 0, nil
	case "month":
		return 0, value, 0, nil
	case "week":
		return 0, 0, 7 * value, nil
	default:
		return 0, 0, value, nil
	}
}

// ParseDate parses a calendar day given as YYYY-MM-DD, RFC3339 or "N [units] ago".
// The result is always truncated to midnight UTC.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(schema.DateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dayUTC(t), nil
	}
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, RFC3339 or 'N [units] ago': %w", err)
	}
	return dayUTC(t), nil
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
