package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/vanlineshq/moveline/internal/mcpserver"
	"github.com/vanlineshq/moveline/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the moving-request tools over MCP stdio",
	Long: `mcp exposes lookup, create, update, and detail tools over MCP stdio so
an external LLM runtime can drive the record store during a conversation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := store.Open(cfg.DatabaseURL, store.WithLogger(logger))
		if err != nil {
			return err
		}

		s := server.NewMCPServer(
			"moveline",
			"1.0.0",
			server.WithToolCapabilities(false),
		)
		mcpserver.New(st, logger).Register(s)

		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
