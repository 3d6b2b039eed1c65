package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanlineshq/moveline/internal/events"
	"github.com/vanlineshq/moveline/internal/store"
	"github.com/vanlineshq/moveline/internal/webserver"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run only the read-only dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker := events.NewBroker()
		st, err := store.Open(cfg.DatabaseURL, store.WithLogger(logger), store.WithBroker(broker))
		if err != nil {
			return err
		}

		srv := webserver.New(st, broker,
			webserver.WithLogger(logger),
			webserver.WithStaticFS(staticFS))
		return srv.ListenAndServe(ctx, cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
