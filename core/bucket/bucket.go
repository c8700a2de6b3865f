// Package bucket converts wall-clock times and shift intervals into canonical time-slot labels.
package bucket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/slotpulse/schema"
)

const (
	// StepMinutes is the width of the internal accumulation step.
	StepMinutes = 30

	// StepHours is the labor contributed by one internal step.
	StepHours = 0.5

	// MinutesPerDay is the length of a wall-clock day.
	MinutesPerDay = 24 * 60
)

var (
	// ErrMalformedTime is returned when a wall-clock value is not HH:MM.
	ErrMalformedTime = errors.New("malformed time value")

	// ErrZeroLength is returned for a shift whose start equals its end.
	ErrZeroLength = errors.New("zero-length interval")
)

// ParseClock parses an HH:MM wall-clock value into minutes since midnight.
// A single-digit hour is tolerated; minutes must always have two digits.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as HH:MM, wrapping past midnight.
func FormatClock(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// Floor returns the start minute of the internal half-hour bucket containing minute.
func Floor(minute int) int {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return minute - minute%StepMinutes
}

// Steps walks from start to end (exclusive) in internal steps and returns the
// half-hour bucket each step falls into. An end before start wraps past midnight.
func Steps(start, end int) ([]int, error) {
	if start == end {
		return nil, ErrZeroLength
	}
	if end < start {
		end += MinutesPerDay
	}
	out := make([]int, 0, (end-start)/StepMinutes+1)
	for m := start; m < end; m += StepMinutes {
		out = append(out, Floor(m))
	}
	return out, nil
}

// Decompose parses a shift's HH:MM bounds and returns its half-hour buckets in order.
// Each returned bucket receives exactly StepHours of labor.
func Decompose(startTime, endTime string) ([]int, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil, err
	}
	return Steps(start, end)
}

// Label renders the display label of the bucket starting at minute.
// Half-hour buckets read HH:MM-HH:MM, hourly buckets read HH:00.
func Label(minute int, g schema.Granularity) string {
	if g == schema.Hour {
		return fmt.Sprintf("%02d:00", Floor(minute)/60)
	}
	start := Floor(minute)
	return FormatClock(start) + "-" + FormatClock(start+StepMinutes)
}

// Display maps an internal half-hour bucket to the start minute of its display bucket.
func Display(minute int, g schema.Granularity) int {
	minute = Floor(minute)
	if g == schema.Hour {
		return minute - minute%60
	}
	return minute
}

// DisplayLabel is Label(Display(minute, g), g).
func DisplayLabel(minute int, g schema.Granularity) string {
	return Label(Display(minute, g), g)
}

// Span is a native slot interval parsed from a revenue label.
type Span struct {
	Start int // Minutes since midnight
	Width int // Minutes, always a positive multiple of StepMinutes
}

// HalfHours returns the internal buckets covered by the span.
func (s Span) HalfHours() []int {
	out := make([]int, 0, s.Width/StepMinutes)
	for m := s.Start; m < s.Start+s.Width; m += StepMinutes {
		out = append(out, Floor(m))
	}
	return out
}

// ParseSlotLabel parses a native revenue slot label. Accepted forms are
// HH:MM-HH:MM ranges and bare HH:MM starts, the latter covering one half-hour.
func ParseSlotLabel(label string) (Span, error) {
	label = strings.TrimSpace(label)
	from, to, isRange := strings.Cut(label, "-")
	start, err := ParseClock(from)
	if err != nil {
		return Span{}, err
	}
	if !isRange {
		return Span{Start: Floor(start), Width: StepMinutes}, nil
	}
	end, err := ParseClock(to)
	if err != nil {
		return Span{}, err
	}
	width := ((end - start) + MinutesPerDay) % MinutesPerDay
	if width == 0 {
		return Span{}, fmt.Errorf("%w: %q", ErrZeroLength, label)
	}
	start = Floor(start)
	// Round partial trailing steps up so every covered half-hour is counted.
	if width%StepMinutes != 0 {
		width += StepMinutes - width%StepMinutes
	}
	return Span{Start: start, Width: width}, nil
}

// InWindow reports whether minute falls within the half-open window [open, close).
// A close at or before open wraps past midnight.
func InWindow(minute, open, close int) bool {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	if open == close {
		return true
	}
	if open < close {
		return minute >= open && minute < close
	}
	return minute >= open || minute < close
}

// LabelStart returns the start minute of a display label produced by Label.
func LabelStart(label string) (int, error) {
	from, _, _ := strings.Cut(label, "-")
	return ParseClock(from)
}
