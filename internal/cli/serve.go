package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vanlineshq/moveline/internal/agent"
	"github.com/vanlineshq/moveline/internal/events"
	"github.com/vanlineshq/moveline/internal/session"
	"github.com/vanlineshq/moveline/internal/store"
	"github.com/vanlineshq/moveline/internal/webserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversational agent and the dashboard server",
	Long: `serve starts one conversational session on the terminal (the console
stands in for the speech transport) alongside the dashboard web server.
The session mints a 6-digit request id and keeps it for its whole lifetime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.GenAI.APIKey == "" {
			return fmt.Errorf("GenAI API key is required: set GOOGLE_API_KEY")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker := events.NewBroker()
		st, err := store.Open(cfg.DatabaseURL, store.WithLogger(logger), store.WithBroker(broker))
		if err != nil {
			return err
		}
		if !st.TestConnection() {
			return fmt.Errorf("database connection test failed for %s", cfg.DatabaseURL)
		}

		conv, err := session.NewGenAI(ctx, cfg.GenAI.APIKey,
			session.WithModel(cfg.GenAI.Model),
			session.WithLogger(logger))
		if err != nil {
			return err
		}

		router := agent.NewRouter(st, conv, agent.WithLogger(logger))
		srv := webserver.New(st, broker,
			webserver.WithLogger(logger),
			webserver.WithStaticFS(staticFS))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.ListenAndServe(ctx, cfg.ListenAddr)
		})
		g.Go(func() error {
			defer stop()
			return runConversation(ctx, router, os.Stdin, os.Stdout)
		})
		return g.Wait()
	},
}

// runConversation drives one session over a line-based transport: the
// opening model turn, then one utterance handled end-to-end per line.
func runConversation(ctx context.Context, router *agent.Router, in io.Reader, out io.Writer) error {
	reply, err := router.Start(ctx)
	if err != nil {
		return fmt.Errorf("start conversation: %w", err)
	}
	fmt.Fprintf(out, "agent: %s\n\n", reply)
	fmt.Fprintf(out, "(your request ID for this session is %s; type 'quit' to hang up)\n\n", router.RequestID())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}
		if utterance == "quit" || utterance == "exit" {
			return nil
		}

		reply, err := router.HandleUtterance(ctx, utterance)
		if err != nil {
			// Transport failure; the session cannot continue.
			return err
		}
		fmt.Fprintf(out, "agent: %s\n\n", reply)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
