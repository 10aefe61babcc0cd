package cmd

import (
	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <analysis-file>...",
	Short: "Enforce a minimum AI readiness score for CI/CD pipelines (fails build on violations)",
	Long: `Assess one or more analyses and fail with a non-zero exit code when a repository
scores below --min-score or grades worse than --min-grade.

Use cases:
- Pull request gates - block merges that erode AI readiness
- Release validation - keep a quality floor across services
- Regression detection - catch drops in documentation or test coverage

Examples:
  # Require at least 70 points
  aiready check analysis.json --min-score 70

  # Require grade B or better
  aiready check analysis.json --min-score 0 --min-grade B`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
