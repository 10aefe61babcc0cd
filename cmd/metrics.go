package cmd

import (
	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the active scoring model.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the weights, thresholds and formulas of the scoring model",
	Long: `Show how assessments are scored, including:
- Dimension weights and acceptable scores
- Penalty factors and the density formula
- Metric thresholds (large file, high complexity, deep nesting, ...)
- Grade bands and the effort model
- Custom weights if configured via .aiready.yaml

No analysis is read - this is purely informational.

Examples:
  # Show the default model
  aiready metrics

  # View with custom weights from config file
  aiready metrics --config .aiready.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
