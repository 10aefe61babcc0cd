package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/iocache"
	"github.com/huangsam/aiready/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig loads the history backend settings without the full shared setup.
func historyBackendConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads minimal configuration and opens the history store.
func historySetup() error {
	if err := historyBackendConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyNoOpenSetupWrapper loads the backend settings without opening the store,
// so tables are neither created before a migration nor held open while clearing.
func historyNoOpenSetupWrapper(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return historyBackendConfig()
}

// sqliteHistoryPath returns the SQLite file used by the configured history store.
func sqliteHistoryPath() string {
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on assessment history management.
//
// Note: Most history subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by assessment commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored assessments and exports",
	Long: `Manage the assessment history used for trend tracking and reporting.

Every saved assessment stores:
- The summary (score, grade, target, duration, recommendation count)
- One score row per dimension
- The full assessment as JSON, used by --trend

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  list    - List recent assessments
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check history status
  aiready history status

  # Export for analysis in pandas/DuckDB
  aiready history export --output-file aiready-history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, connection status, number of assessments and repositories,
first and last assessment times, and the row count of each table.

Examples:
  aiready history status
  AIREADY_HISTORY_BACKEND=postgresql AIREADY_HISTORY_DB_CONNECT="..." aiready history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", errors.New("history store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyListCmd lists stored assessments.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent stored assessments",
	Long: `List stored assessments, newest first.

Examples:
  # Last 20 assessments of every repository
  aiready history list

  # Last 5 assessments of one repository as JSON
  aiready history list --repo . --limit 5 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to list history", err)
		}
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to Parquet for BI tools and analytics",
	Long: `Export all stored assessments to Parquet format for use with analytics tools.

Exports two datasets:
- <output-file>.assessments.parquet - one row per assessment
- <output-file>.dimension_scores.parquet - one row per assessment and dimension

Requires: --output-file parameter

Examples:
  aiready history export --output-file aiready-history
  duckdb -c "SELECT * FROM read_parquet('aiready-history.dimension_scores.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assessments",
	Long: `Delete all stored assessments and dimension scores.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  aiready history export --output-file backup
  aiready history clear`,
	PreRunE: historyNoOpenSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, sqliteHistoryPath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  aiready history migrate

  # Migrate to specific version
  aiready history migrate --target-version 2

  # Rollback to initial state
  aiready history migrate --target-version 0`,
	PreRunE: historyNoOpenSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		connStr := cfg.HistoryDBConnect
		if cfg.HistoryBackend == schema.SQLiteBackend {
			connStr = sqliteHistoryPath()
		}
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
