// Package cmd defines the command-line interface for slotpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/recordstore"
	"github.com/huangsam/slotpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(recordsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the records subcommands to the parent records command
	recordsCmd.AddCommand(recordsMigrateCmd)
	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.StringP("stores", "s", "", "Comma-separated list of store IDs (empty = all stores)")
	flags.String("start", "", "Start date (YYYY-MM-DD, RFC3339 or '30 days ago')")
	flags.String("end", "", "End date (YYYY-MM-DD, RFC3339 or '30 days ago')")
	flags.String("lookback", "", "Time window before the end date when --start is not given (e.g. '3 months')")
	flags.String("weekdays", "", "Comma-separated weekdays to include (e.g. 'mon,tue,sat')")
	flags.IntP("granularity", "g", int(schema.HalfHour), "Slot width in minutes: 30 or 60")
	flags.String("shift-types", "", "Comma-separated shift types counted as labor (empty = all)")
	flags.String("open-time", "", "Start of the operating window for insights (HH:MM)")
	flags.String("close-time", "", "End of the operating window for insights (HH:MM)")
	flags.Float64("low-threshold", 0, "Revenue per staffed hour below which a slot is flagged as overstaffed")
	flags.Float64("high-threshold", 0, "Revenue per staffed hour above which a slot is flagged as understaffed")
	flags.Float64("gap-threshold", 0, "Relative productivity gap between stores worth reporting (0.2 = 20%)")
	flags.Float64("hourly-cost", 0, "Labor cost of one staffed hour")
	flags.Int("min-samples", 0, "Minimum days of data before a slot can be flagged")
	flags.IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	flags.String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.String("records-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or file")
	flags.String("records-db-connect", "", "Record store connection string (SQLite path, MySQL DSN or PostgreSQL keywords)")
	flags.String("records-file", "", "JSON dataset or directory with revenue.csv and shifts.csv for the file backend")
	flags.String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	flags.String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	flags.String("profile", "", "Enable profiling and write profiles to files with this prefix")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen", contract.DefaultListen, "Address for the HTTP API to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of recordsMigrateCmd to Viper
	recordsMigrateCmd.Flags().Int("target-version", recordstore.LatestVersion, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(recordsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding records migrate flags", err)
	}
}
