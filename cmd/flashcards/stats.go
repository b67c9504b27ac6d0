package main

import (
	"fmt"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show deck statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				s := d.Stats(d.Now())
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Total cards: %d\n", s.Total)
				fmt.Fprintf(w, "Cards due: %d\n", s.Due)
				fmt.Fprintf(w, "Average ease: %.2f\n", s.AverageEase)
				fmt.Fprintf(w, "Total reviews: %d\n", s.Repetitions)
				return false, nil
			})
		},
	}
}
