package cmd

import (
	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/spf13/cobra"
)

// assessCmd runs the full assessment on one or more analyses.
var assessCmd = &cobra.Command{
	Use:   "assess <analysis-file>...",
	Short: "Score AI readiness from one or more code analyses",
	Long: `Assess how well a repository supports AI-assisted development.

Reads a JSON or YAML analysis (functions, complexity, anti-patterns, files) produced by an
external analyzer, probes the repository for tooling, GitHub setup and tests, and reports:
- A 0-100 score per dimension and overall, with a letter grade
- Prioritized recommendations
- The effort needed to reach the target score

Multiple analysis files are assessed in parallel and summarized in one table.

Examples:
  # Assess the current repository
  aiready assess analysis.json

  # Track progress against the previous run
  aiready assess analysis.json --trend

  # Export a Markdown report
  aiready assess analysis.json --output markdown --output-file READINESS.md

  # Assess several services at once
  aiready assess services/*/analysis.json --workers 4`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAssess(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run assessment", err)
		}
	},
}
