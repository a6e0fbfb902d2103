package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vestigehq/vestige/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP (Model Context Protocol) server for LLM tool integration",
	Long: `Starts an MCP server over stdio transport that exposes detection as
tools LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "vestige": {
        "command": "vestige",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - detect_unused       Scan for unused variables, imports, exports, dead code
  - cleanup_preview     Preview or apply automated cleanup for one file
  - detection_summary   Aggregate counts from the last run`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version, cfg)
	return server.Run(context.Background())
}
