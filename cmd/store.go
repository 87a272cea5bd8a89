package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/iostore"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeMigrateSetup loads minimal configuration needed for store maintenance.
// It does NOT open the store, so migrations and clears can run on a fresh
// or broken database.
func storeMigrateSetup() error {
	setConfigSearch()
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = storeConnection(backend, connStr)
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate and clear.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeSetup opens the store on top of the minimal configuration.
func storeSetup() error {
	if err := storeMigrateSetup(); err != nil {
		return err
	}
	if err := iostore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize sprint store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for status and export.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on sprint store management.
//
// Note: Store subcommands use minimal initialization instead of the full
// sharedSetup. They do not need a timezone, a sprint or output validation.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the sprint store",
	Long: `Manage the database that holds sprints, backlog items and daily snapshots.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check the store
  sprintburn store status

  # Export for analysis in pandas/DuckDB
  sprintburn store export --output-file sprints`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the sprint store.

Displays:
- Backend type and connection status
- Number of sprints and the latest sprint
- Number of snapshots and the last snapshot date
- Table row counts and database size

Examples:
  sprintburn store status
  sprintburn store status --store-backend postgresql --store-db-connect "host=db dbname=sprintburn"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetSprintStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored sprint data",
	Long: `Delete all sprints, backlog items and snapshots.

For SQLite the database file is removed. For MySQL and PostgreSQL the tables
are dropped, including the migration bookkeeping.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  sprintburn store export --output-file backup
  sprintburn store clear`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sprint data to Parquet for BI tools and analytics",
	Long: `Export all stored sprint data to Parquet format.

Writes three files next to --output-file:
- <output-file>.sprints.parquet
- <output-file>.backlog_items.parquet
- <output-file>.daily_snapshots.parquet

Requires: --output-file parameter

Examples:
  sprintburn store export --output-file sprints
  duckdb -c "SELECT * FROM read_parquet('sprints.daily_snapshots.parquet')"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteExport(rootCtx, os.Stdout, iostore.Manager.GetSprintStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export sprint data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the sprint store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the sprint store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  sprintburn store migrate

  # Migrate to specific version
  sprintburn store migrate --target-version 2

  # Rollback everything
  sprintburn store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.Migrate(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
