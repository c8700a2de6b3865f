package bucket

import (
	"testing"
)

// FuzzDecompose checks that any accepted interval yields a positive, bounded
// number of aligned half-hour buckets.
func FuzzDecompose(f *testing.F) {
	seeds := [][2]string{
		{"09:00", "17:00"},
		{"23:00", "01:00"},
		{"09:15", "10:00"},
		{"00:00", "23:59"},
		{"12:00", "12:00"},
		{"bad", "17:00"},
	}
	for _, s := range seeds {
		f.Add(s[0], s[1])
	}

	f.Fuzz(func(t *testing.T, start, end string) {
		steps, err := Decompose(start, end)
		if err != nil {
			return
		}
		if len(steps) == 0 {
			t.Fatalf("Decompose(%q, %q) accepted but produced no steps", start, end)
		}
		if len(steps) > MinutesPerDay/StepMinutes {
			t.Fatalf("Decompose(%q, %q) produced %d steps, more than one day", start, end, len(steps))
		}
		for _, m := range steps {
			if m < 0 || m >= MinutesPerDay || m%StepMinutes != 0 {
				t.Fatalf("Decompose(%q, %q) produced unaligned bucket %d", start, end, m)
			}
		}
	})
}
