package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/tools"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve ask_ud and web_search as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant()
		if err != nil {
			return err
		}
		logger.Info("[MCP] Serving on stdio")
		return server.ServeStdio(tools.NewServer(a, Version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
