package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func TestRevalidateQuery(t *testing.T) {
	now := time.Date(2025, time.March, 20, 15, 0, 0, 0, time.UTC)
	base := func() *Config {
		return &Config{
			StoreIDs:    []string{"s1"},
			Granularity: schema.HalfHour,
			ResultLimit: DefaultResultLimit,
			StartTime:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("empty overrides keep the base", func(t *testing.T) {
		cfg := base()
		require.NoError(t, RevalidateQuery(cfg, QueryOverrides{}, now))
		assert.Equal(t, base(), cfg)
	})

	t.Run("overrides apply", func(t *testing.T) {
		cfg := base()
		err := RevalidateQuery(cfg, QueryOverrides{
			Stores:      "s2, s3",
			Start:       "2025-03-03",
			End:         "7 days ago",
			Weekdays:    "sun,mon",
			Granularity: 60,
			ShiftTypes:  "Kitchen",
			Limit:       5,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"s2", "s3"}, cfg.StoreIDs)
		assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), cfg.StartTime)
		assert.Equal(t, time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), cfg.EndTime)
		assert.Equal(t, []time.Weekday{time.Monday, time.Sunday}, cfg.Weekdays)
		assert.Equal(t, schema.Hour, cfg.Granularity)
		assert.Equal(t, []string{"kitchen"}, cfg.ShiftTypes)
		assert.Equal(t, 5, cfg.ResultLimit)
	})

	tests := []struct {
		name string
		q    QueryOverrides
		want string
	}{
		{"granularity", QueryOverrides{Granularity: 15}, "granularity must be 30 or 60"},
		{"weekday", QueryOverrides{Weekdays: "funday"}, "weekdays"},
		{"limit", QueryOverrides{Limit: MaxResultLimit + 1}, "limit must be greater than 0"},
		{"start", QueryOverrides{Start: "yesterday-ish"}, "invalid start date"},
		{"end before start", QueryOverrides{End: "2025-02-01"}, "cannot be after end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RevalidateQuery(base(), tt.q, now)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
