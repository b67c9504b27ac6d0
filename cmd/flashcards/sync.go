package main

import (
	"fmt"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/conorfennell/flashcards/internal/sync"
	"github.com/spf13/cobra"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <dir-or-git-url>",
		Short: "Import new cards from every .csv and .md file in a directory or git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				res, err := sync.Run(cmd.Context(), d, source, sync.Options{
					ReposDir: a.cfg.ReposDir,
					Progress: cmd.ErrOrStderr(),
				})
				if err != nil {
					return false, err
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Found %d cards in %d files: %d added, %d already present.\n",
					res.Parsed, res.Files, res.Added, res.Skipped)
				if len(res.Errors) > 0 {
					fmt.Fprintln(w, "\nErrors:")
					for _, e := range res.Errors {
						fmt.Fprintf(w, "- %s\n", e)
					}
				}
				return res.Added > 0, nil
			})
		},
	}
}
