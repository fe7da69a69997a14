package cmd

import (
	"github.com/huangsam/keepwatch/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Keepwatch MCP server",
	Long:  `Launch an MCP server that allows AI agents to query sales rank and buybox data via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP requests carry their own ASINs, so startup needs none.
		input.AllowEmptyASINs = true
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
