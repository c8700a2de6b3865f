package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTime covers various valid and invalid cases.
func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{"plural months mixed case", "3 MoNtHs AgO", fixedNow.AddDate(0, -3, 0), false},
		{"singular week", "1 Week Ago", fixedNow.AddDate(0, 0, -7), false},
		{"days upper case", "10 DAYS AGO", fixedNow.AddDate(0, 0, -10), false},
		{"missing ago", "2 years", time.Time{}, true},
		{"bad unit", "4 decades ago", time.Time{}, true},
		{"hours are too fine", "4 hours ago", time.Time{}, true},
		{"non-numeric", "one year ago", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLookback(t *testing.T) {
	tests := []struct {
		input     string
		y, m, d   int
		expectErr bool
	}{
		{"90 days", 0, 0, 90, false},
		{"1 day", 0, 0, 1, false},
		{"2 weeks", 0, 0, 14, false},
		{"3 MoNtHs", 0, 3, 0, false},
		{"1 year", 1, 0, 0, false},
		{"720h", 0, 0, 30, false},
		{"1h", 0, 0, 0, true},
		{"0 days", 0, 0, 0, true},
		{"3 decades", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, d, err := ParseLookback(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tt.y, tt.m, tt.d}, []int{y, m, d})
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("2025-03-01", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDate("2025-03-01T18:30:00Z", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDate("2 days ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("yesterday", fixedNow)
	assert.Error(t, err)
}

// FuzzParseRelativeTime fuzzes the ParseRelativeTime function with random inputs.
func FuzzParseRelativeTime(f *testing.F) {
	seeds := []string{"1 year ago", "2 months ago", "3 weeks ago", "4 days ago", "0 years ago"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = ParseRelativeTime(input, fixedNow)
	})
}

// FuzzParseDate fuzzes the ParseDate function with random inputs.
func FuzzParseDate(f *testing.F) {
	seeds := []string{"2025-01-01", "2025-01-01T00:00:00Z", "7 days ago", "", "2025-13-40"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		got, err := ParseDate(input, fixedNow)
		if err != nil {
			return
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Fatalf("ParseDate(%q) = %v, not truncated to a day", input, got)
		}
	})
}

// FuzzParseLookback fuzzes the ParseLookback function with random inputs.
func FuzzParseLookback(f *testing.F) {
	seeds := []string{"1 year", "6 months", "3 weeks", "30 days", "720h", "", "months"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		y, m, d, err := ParseLookback(input)
		if err == nil && y+m+d <= 0 {
			t.Fatalf("ParseLookback(%q) accepted an empty window", input)
		}
	})
}
