package contract

import (
	"fmt"
	"time"

	"github.com/huangsam/slotpulse/schema"
)

// QueryOverrides holds per-request filter overrides from the MCP and HTTP hosts.
// Zero values keep the base configuration.
type QueryOverrides struct {
	Stores      string
	Start       string
	End         string
	Weekdays    string
	Granularity int
	ShiftTypes  string
	Limit       int
}

// RevalidateQuery applies request overrides to a cloned config and validates them
// the same way ProcessAndValidate validates flags.
func RevalidateQuery(cfg *Config, q QueryOverrides, now time.Time) error {
	if q.Stores != "" {
		cfg.StoreIDs = ParseList(q.Stores)
	}

	if q.Weekdays != "" {
		cfg.Weekdays = nil
		for _, part := range ParseList(q.Weekdays) {
			wd, err := schema.ParseWeekday(part)
			if err != nil {
				return fmt.Errorf("weekdays: %w", err)
			}
			cfg.Weekdays = append(cfg.Weekdays, wd)
		}
		cfg.Weekdays = schema.SortWeekdays(cfg.Weekdays)
	}

	if q.Granularity != 0 {
		g := schema.Granularity(q.Granularity)
		if _, ok := schema.ValidGranularities[g]; !ok {
			return fmt.Errorf("granularity must be 30 or 60 (received %d)", q.Granularity)
		}
		cfg.Granularity = g
	}

	if q.ShiftTypes != "" {
		cfg.ShiftTypes = normalizeShiftTypes(ParseList(q.ShiftTypes))
	}

	if q.Limit != 0 {
		if q.Limit < 0 || q.Limit > MaxResultLimit {
			return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, q.Limit)
		}
		cfg.ResultLimit = q.Limit
	}

	if q.Start != "" {
		t, err := ParseDate(q.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date '%s': %w", q.Start, err)
		}
		cfg.StartTime = t
	}
	if q.End != "" {
		t, err := ParseDate(q.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date '%s': %w", q.End, err)
		}
		cfg.EndTime = t
	}
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)",
			cfg.StartTime.Format(schema.DateFormat), cfg.EndTime.Format(schema.DateFormat))
	}
	return nil
}
