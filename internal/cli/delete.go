package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/vanlineshq/moveline/internal/store"
)

var requestIDArg = regexp.MustCompile(`^\d{6}$`)

var deleteCmd = &cobra.Command{
	Use:   "delete <request-id>",
	Short: "Delete a moving request (administrative)",
	Long: `delete removes a record from the store. The conversational flow never
deletes; this exists for cleaning up test records and cancelled moves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		id := args[0]
		if !requestIDArg.MatchString(id) {
			return fmt.Errorf("request id must be a 6-digit number, got %q", id)
		}

		st, err := store.Open(cfg.DatabaseURL, store.WithLogger(logger))
		if err != nil {
			return err
		}

		deleted, err := st.Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no moving request with id %s", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted moving request %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
