package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/recordstore"
	"github.com/huangsam/slotpulse/schema"
)

// recordsSetup loads the record store settings without validating report filters.
func recordsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("records-backend"))
	connStr := viper.GetString("records-db-connect")
	if _, ok := schema.ValidRecordBackends[backend]; !ok {
		return fmt.Errorf("invalid records backend '%s'. must be sqlite, mysql, postgresql, file", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RecordsBackend = backend
	cfg.RecordsDBConnect = connStr
	cfg.RecordsFile = viper.GetString("records-file")
	return nil
}

// requireDatabase rejects the read-only file backend for commands that write.
func requireDatabase() error {
	if cfg.RecordsBackend == schema.FileBackend {
		return fmt.Errorf("records backend %s is read-only: %w", schema.FileBackend, contract.ErrUnsupportedBackend)
	}
	return nil
}

// recordsCmd focused on record store management.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the revenue and shift record store",
	Long: `Manage the database that holds revenue and shift records.

Supported backends: SQLite (default), MySQL, PostgreSQL, or File (read-only)

Subcommands:
  migrate - Run database schema migrations
  import  - Load records from a JSON file or a CSV directory
  status  - Show record counts, stores and date range

Examples:
  # Load a month of data into the default SQLite store
  slotpulse records import ./march.json

  # Check what is stored
  slotpulse records status`,
}

// recordsMigrateCmd runs database migrations for the record store.
var recordsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the record store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  slotpulse records migrate

  # Migrate to specific version
  slotpulse records migrate --target-version 1

  # Rollback everything
  slotpulse records migrate --target-version 0`,
	PreRunE: recordsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireDatabase(); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		targetVersion := viper.GetInt("target-version")
		if err := recordstore.Migrate(os.Stdout, cfg.RecordsBackend, cfg.RecordsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// recordsImportCmd loads a dataset into the record store.
var recordsImportCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Import revenue and shift records from JSON or CSV",
	Long: `Import records into the configured record store.

The source is either a JSON file with "revenue" and "shifts" arrays, or a directory
holding revenue.csv (store_id,date,slot,revenue,total_revenue) and shifts.csv
(store_id,employee_id,date,start_time,end_time,shift_type).

Records replace existing ones with the same identity: revenue by store and date,
shifts by store, employee, date and start time.

Examples:
  # Import a JSON export
  slotpulse records import ./export.json

  # Import a CSV pair into PostgreSQL
  SLOTPULSE_RECORDS_BACKEND=postgresql SLOTPULSE_RECORDS_DB_CONNECT="host=... dbname=..." slotpulse records import ./csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: recordsSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := requireDatabase(); err != nil {
			contract.LogFatal("Failed to import records", err)
		}
		src, err := recordstore.NewFileStore(args[0])
		if err != nil {
			contract.LogFatal("Failed to read records", err)
		}
		ds, err := src.Load(rootCtx, contract.RecordQuery{})
		if err != nil {
			contract.LogFatal("Failed to read records", err)
		}

		store, err := recordstore.OpenConfig(cfg)
		if err != nil {
			contract.LogFatal("Failed to open record store", err)
		}
		defer func() { _ = store.Close() }()

		res, err := store.Import(rootCtx, ds)
		if err != nil {
			contract.LogFatal("Failed to import records", err)
		}
		fmt.Printf("Imported %d revenue records and %d shifts (%d skipped).\n", res.Revenue, res.Shifts, res.Skipped)
	},
}

// recordsStatusCmd shows record store status.
var recordsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record counts, stores, date range and schema version",
	Long: `Show detailed information about the record store.

Displays:
- Backend type and connection status
- Schema version (database backends)
- Revenue and shift record counts
- Stores and the covered date range
- The dataset version used to key cached reports

Examples:
  # Check the default SQLite store
  slotpulse records status`,
	PreRunE: recordsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := recordstore.OpenConfig(cfg)
		if err != nil {
			contract.LogFatal("Failed to open record store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get record status", err)
		}
		recordstore.PrintRecordStatus(status)
	},
}
