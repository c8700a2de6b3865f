package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/slotpulse/core/bucket"
	"github.com/huangsam/slotpulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultListen      = "127.0.0.1:8080"
)

// Default staffing rules. Every one of them can be overridden per deployment.
const (
	DefaultOpenTime        = "11:00"
	DefaultCloseTime       = "23:00"
	DefaultLowThreshold    = 30.0
	DefaultHighThreshold   = 60.0
	DefaultGapThresholdPct = 0.20
	DefaultHourlyCost      = 15.0
	DefaultWeeksPerMonth   = 4.0
	DefaultMinSampleCount  = 1
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProductivityRawInput holds the staffing rules from the YAML config file.
// Pointer fields distinguish "not set" from zero values.
type ProductivityRawInput struct {
	OpenTime   *string   `mapstructure:"open_time"`
	CloseTime  *string   `mapstructure:"close_time"`
	ShiftTypes *[]string `mapstructure:"shift_types"`
	Low        *float64  `mapstructure:"low"`
	High       *float64  `mapstructure:"high"`
	GapPct     *float64  `mapstructure:"gap_pct"`
	HourlyCost *float64  `mapstructure:"hourly_cost"`
}

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config.
type Config struct {
	StoreIDs    []string
	StartTime   time.Time // Zero means unbounded
	EndTime     time.Time // Zero means unbounded
	Weekdays    []time.Weekday
	Granularity schema.Granularity
	ShiftTypes  []string
	Insight     schema.InsightConfig

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	RecordsBackend   schema.DatabaseBackend
	RecordsDBConnect string // Please use env var as this is plaintext
	RecordsFile      string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	Listen string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Filter flags ---
	Stores      string `mapstructure:"stores"`
	Start       string `mapstructure:"start"`
	End         string `mapstructure:"end"`
	Lookback    string `mapstructure:"lookback"`
	Weekdays    string `mapstructure:"weekdays"`
	Granularity int    `mapstructure:"granularity"`
	ShiftTypes  string `mapstructure:"shift-types"`

	// --- Staffing rule flags (override the productivity block) ---
	OpenTime      string  `mapstructure:"open-time"`
	CloseTime     string  `mapstructure:"close-time"`
	LowThreshold  float64 `mapstructure:"low-threshold"`
	HighThreshold float64 `mapstructure:"high-threshold"`
	GapThreshold  float64 `mapstructure:"gap-threshold"`
	HourlyCost    float64 `mapstructure:"hourly-cost"`
	MinSamples    int     `mapstructure:"min-samples"`

	// --- Output flags ---
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Storage flags ---
	RecordsBackend   string `mapstructure:"records-backend"`
	RecordsDBConnect string `mapstructure:"records-db-connect"`
	RecordsFile      string `mapstructure:"records-file"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`

	// --- Fields from serveCmd.Flags() ---
	Listen string `mapstructure:"listen"`

	// --- Staffing rules from config file ---
	Productivity ProductivityRawInput `mapstructure:"productivity"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.StoreIDs = slices.Clone(c.StoreIDs)
	clone.Weekdays = slices.Clone(c.Weekdays)
	clone.ShiftTypes = slices.Clone(c.ShiftTypes)
	return &clone
}

// Filter returns the immutable filter context for one engine run.
func (c *Config) Filter() schema.FilterContext {
	return schema.FilterContext{
		StoreIDs:    slices.Clone(c.StoreIDs),
		From:        c.StartTime,
		To:          c.EndTime,
		Weekdays:    slices.Clone(c.Weekdays),
		ShiftTypes:  slices.Clone(c.ShiftTypes),
		Granularity: c.Granularity,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	return ProcessAndValidateAt(cfg, input, time.Now())
}

// ProcessAndValidateAt is ProcessAndValidate with an explicit clock for relative dates.
func ProcessAndValidateAt(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, now); err != nil {
		return err
	}
	if err := processProductivity(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, schema.FileBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates record store and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Records Backend Validation ---
	cfg.RecordsBackend = schema.DatabaseBackend(strings.ToLower(input.RecordsBackend))
	if _, ok := schema.ValidRecordBackends[cfg.RecordsBackend]; !ok {
		return fmt.Errorf("invalid records backend '%s'. must be sqlite, mysql, postgresql, file", input.RecordsBackend)
	}
	cfg.RecordsDBConnect = input.RecordsDBConnect
	cfg.RecordsFile = strings.TrimSpace(input.RecordsFile)
	if err := ValidateDatabaseConnectionString(cfg.RecordsBackend, cfg.RecordsDBConnect); err != nil {
		return fmt.Errorf("records-db-connect: %w", err)
	}
	if cfg.RecordsBackend == schema.FileBackend && cfg.RecordsFile == "" {
		return fmt.Errorf("records-file is required when using %s backend", schema.FileBackend)
	}

	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// Records and cache must not share one SQLite file
	if cfg.RecordsBackend == schema.SQLiteBackend && cfg.CacheBackend == schema.SQLiteBackend {
		recordsPath := cfg.RecordsDBConnect
		if recordsPath == "" {
			recordsPath = GetRecordsDBFilePath()
		}
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		if recordsPath == cachePath {
			return fmt.Errorf("record store and cache must use different SQLite database files. Both resolve to %q", recordsPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Listen = strings.TrimSpace(input.Listen)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processFilters handles store, weekday and granularity selection.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreIDs = ParseList(input.Stores)

	cfg.Weekdays = nil
	for _, part := range ParseList(input.Weekdays) {
		wd, err := schema.ParseWeekday(part)
		if err != nil {
			return fmt.Errorf("weekdays: %w", err)
		}
		cfg.Weekdays = append(cfg.Weekdays, wd)
	}
	if len(cfg.Weekdays) > 0 {
		cfg.Weekdays = schema.SortWeekdays(cfg.Weekdays)
	}

	cfg.Granularity = schema.Granularity(input.Granularity)
	if cfg.Granularity == 0 {
		cfg.Granularity = schema.HalfHour
	}
	if _, ok := schema.ValidGranularities[cfg.Granularity]; !ok {
		return fmt.Errorf("granularity must be 30 or 60 (received %d)", input.Granularity)
	}
	return nil
}

// processTimeRange handles date parsing and time range validation.
// Both ends are optional; lookback only applies when start is not given.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.StartTime = time.Time{}
	cfg.EndTime = time.Time{}

	if input.End != "" {
		t, err := ParseDate(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date '%s': %w", input.End, err)
		}
		cfg.EndTime = t
	}

	switch {
	case input.Start != "":
		t, err := ParseDate(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date '%s': %w", input.Start, err)
		}
		cfg.StartTime = t
	case input.Lookback != "":
		y, m, d, err := ParseLookback(input.Lookback)
		if err != nil {
			return fmt.Errorf("invalid lookback: %w", err)
		}
		anchor := cfg.EndTime
		if anchor.IsZero() {
			anchor = dayUTC(now)
		}
		cfg.StartTime = anchor.AddDate(-y, -m, -d)
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)",
			cfg.StartTime.Format(schema.DateFormat), cfg.EndTime.Format(schema.DateFormat))
	}
	return nil
}

// processProductivity merges defaults, the productivity block of the config file and
// command-line flags, in that order of precedence.
func processProductivity(cfg *Config, input *ConfigRawInput) error {
	ic := schema.InsightConfig{
		OpenTime:        DefaultOpenTime,
		CloseTime:       DefaultCloseTime,
		LowThreshold:    DefaultLowThreshold,
		HighThreshold:   DefaultHighThreshold,
		GapThresholdPct: DefaultGapThresholdPct,
		HourlyCost:      DefaultHourlyCost,
		WeeksPerMonth:   DefaultWeeksPerMonth,
		MinSampleCount:  DefaultMinSampleCount,
	}
	cfg.ShiftTypes = nil

	// Override with config file values if provided
	p := input.Productivity
	if p.OpenTime != nil {
		ic.OpenTime = *p.OpenTime
	}
	if p.CloseTime != nil {
		ic.CloseTime = *p.CloseTime
	}
	if p.ShiftTypes != nil {
		cfg.ShiftTypes = normalizeShiftTypes(*p.ShiftTypes)
	}
	if p.Low != nil {
		ic.LowThreshold = *p.Low
	}
	if p.High != nil {
		ic.HighThreshold = *p.High
	}
	if p.GapPct != nil {
		ic.GapThresholdPct = *p.GapPct
	}
	if p.HourlyCost != nil {
		ic.HourlyCost = *p.HourlyCost
	}

	// Override with command-line flags if provided (takes precedence)
	if input.OpenTime != "" {
		ic.OpenTime = input.OpenTime
	}
	if input.CloseTime != "" {
		ic.CloseTime = input.CloseTime
	}
	if input.ShiftTypes != "" {
		cfg.ShiftTypes = normalizeShiftTypes(ParseList(input.ShiftTypes))
	}
	if input.LowThreshold > 0 {
		ic.LowThreshold = input.LowThreshold
	}
	if input.HighThreshold > 0 {
		ic.HighThreshold = input.HighThreshold
	}
	if input.GapThreshold > 0 {
		ic.GapThresholdPct = input.GapThreshold
	}
	if input.HourlyCost > 0 {
		ic.HourlyCost = input.HourlyCost
	}
	if input.MinSamples > 0 {
		ic.MinSampleCount = input.MinSamples
	}

	// Validate
	if _, err := bucket.ParseClock(ic.OpenTime); err != nil {
		return fmt.Errorf("open-time: %w", err)
	}
	if _, err := bucket.ParseClock(ic.CloseTime); err != nil {
		return fmt.Errorf("close-time: %w", err)
	}
	if ic.LowThreshold < 0 || ic.HighThreshold < 0 {
		return fmt.Errorf("thresholds must not be negative (low %.2f, high %.2f)", ic.LowThreshold, ic.HighThreshold)
	}
	if ic.LowThreshold >= ic.HighThreshold {
		return fmt.Errorf("low-threshold (%.2f) must be below high-threshold (%.2f)", ic.LowThreshold, ic.HighThreshold)
	}
	if ic.GapThresholdPct <= 0 || ic.GapThresholdPct > 10 {
		return fmt.Errorf("gap-threshold must be a fraction greater than 0 and at most 10 (received %.2f)", ic.GapThresholdPct)
	}
	if ic.HourlyCost < 0 {
		return fmt.Errorf("hourly-cost must not be negative (received %.2f)", ic.HourlyCost)
	}

	cfg.Insight = ic
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// normalizeShiftTypes lowercases, trims and deduplicates shift types, keeping the
// result sorted so equal selections hash equally.
func normalizeShiftTypes(types []string) []string {
	var out []string
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}
