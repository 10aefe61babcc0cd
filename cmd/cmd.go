// Package cmd defines the command-line interface for aiready.
package cmd

import (
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or markdown or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers for multiple analyses")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in report headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags shared by the commands that run an assessment
	for _, c := range []*cobra.Command{assessCmd, checkCmd} {
		c.Flags().String("repo", "", "Repository to probe for tooling and tests (defaults to the path in the analysis)")
		c.Flags().Int("target-score", schema.DefaultTargetScore, "Score the effort estimate aims for")
		c.Flags().Int("neutral-score", schema.DefaultNeutralScore, "Score given to dimensions without data")
		c.Flags().String("detection-timeout", contract.DefaultDetectionTimeout.String(), "Timeout of each detection probe")
		c.Flags().String("github-token", "", "GitHub token for the branch protection probe (prefer AIREADY_GITHUB_TOKEN)")
		c.Flags().String("github-repo", "", "GitHub repository in owner/name form for the branch protection probe")
	}

	assessCmd.Flags().Bool("detail", false, "Print the per-dimension evidence")
	assessCmd.Flags().Bool("trend", false, "Compare against the latest stored assessment")
	assessCmd.Flags().Bool("save", true, "Save assessments to the history store")
	assessCmd.Flags().Bool("progress", false, "Show a progress bar for single assessments")

	checkCmd.Flags().Int("min-score", contract.DefaultMinScore, "Minimum overall score to pass")
	checkCmd.Flags().String("min-grade", "", "Minimum grade to pass (A, B, C, D, F)")

	metricsCmd.Flags().Int("target-score", schema.DefaultTargetScore, "Score the effort estimate aims for")
	metricsCmd.Flags().Int("neutral-score", schema.DefaultNeutralScore, "Score given to dimensions without data")

	historyListCmd.Flags().String("repo", "", "Only list assessments of this repository")
	historyListCmd.Flags().Int("limit", contract.DefaultHistoryLimit, "Number of assessments to list")

	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
