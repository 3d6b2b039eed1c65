// Package cli wires the moveline commands: the conversational agent, the
// dashboard server, the MCP tool server, and the administrative delete.
package cli

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanlineshq/moveline/internal/config"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger

	// staticFS is the embedded dashboard frontend, set by main.
	staticFS fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "moveline",
	Short: "moveline - moving-company call center agent and dashboard",
	Long: `moveline runs the Van Lines call-center stack: a conversational agent
that collects and looks up moving requests, a read-only web dashboard over
the request store, and an MCP tool server exposing the record operations to
an external LLM runtime.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default moveline.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI with the embedded frontend filesystem.
func Execute(frontend fs.FS) error {
	staticFS = frontend
	return rootCmd.Execute()
}
