package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can preview links.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP
  - Prometheus metrics on /metrics (with --metrics)

Examples:
  # Stdio mode (default, for Claude Desktop)
  linkcard mcp serve

  # HTTP mode with metrics
  linkcard mcp serve --port 8080 --metrics

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "linkcard": {
        "command": "/path/to/linkcard",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("metrics", false, "serve Prometheus metrics on /metrics (HTTP mode only)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	withMetrics, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return fmt.Errorf("getting metrics flag: %w", err)
	}

	ports := &mcp.Ports{
		Preview:  previewService,
		History:  historyService,
		Settings: settingsService,
	}

	if withMetrics {
		if port <= 0 {
			return errors.New("--metrics requires --port")
		}
		if metricsHandler == nil {
			return errors.New("metrics not configured")
		}
		ports.Metrics = metricsHandler
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		if withMetrics {
			fmt.Fprintf(cmd.OutOrStdout(), "Metrics on http://localhost%s/metrics\n", addr)
		}
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
