package cmd

import (
	"github.com/huangsam/aiready/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the AI readiness MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents assess repositories through the
assess_repository, compare_assessments and get_dimension_score tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
