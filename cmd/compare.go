package cmd

import (
	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd compares two exported assessments.
var compareCmd = &cobra.Command{
	Use:   "compare <current.json> <previous.json>",
	Short: "Compare two exported JSON assessments",
	Long: `Compare two assessments exported with --output json and report the trend.

Shows the overall and per-dimension score changes, the grade change, and whether the
repository is improving, declining or stable (changes within 5 points are stable).

Examples:
  aiready assess analysis.json --output json --output-file today.json
  aiready compare today.json last-week.json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compare assessments", err)
		}
	},
}
