package main

import (
	"github.com/conorfennell/flashcards/internal/console"
	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

func newReviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review every card that is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				n, err := d.Review(p)
				if err != nil {
					return false, err
				}
				if n == 0 {
					return false, nil
				}
				p.Say("Review complete.")
				return true, nil
			})
		},
	}
}
