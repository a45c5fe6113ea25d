package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bimmerbailey/sanictl/internal/mask"
)

var rehydrateCmd = &cobra.Command{
	Use:   "rehydrate --session <id> [file]",
	Short: "Restore original values in previously masked text",
	Long: `Read masked text (from a file or stdin) and replace every placeholder
with the original value recorded under the given session.

Examples:
  sanictl rehydrate --session s1 --session-dir ./sessions masked.txt
  cat masked.txt | sanictl rehydrate --session s1 --session-dir ./sessions`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRehydrate,
}

func init() {
	rehydrateCmd.Flags().String("session", "", "session id the rehydration map was stored under")
	rehydrateCmd.Flags().String("session-dir", "", "directory for on-disk session storage (default: in-memory)")
	_ = rehydrateCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(rehydrateCmd)
}

func runRehydrate(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("session")

	store, err := buildStore(cmd)
	if err != nil {
		return err
	}
	m, err := store.Get(sessionID)
	if err != nil {
		return fmt.Errorf("load session %q: %w", sessionID, err)
	}

	raw, err := readSanitizeInput(args)
	if err != nil {
		return err
	}

	restored := mask.Rehydrate(raw, m)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), restored)
	return err
}
