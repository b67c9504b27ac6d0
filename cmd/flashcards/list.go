package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every card with its schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				if d.Len() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cards in deck.")
					return false, nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tFront\tBack\tInterval\tDue\tReps")
				fmt.Fprintln(w, "-\t-----\t----\t--------\t---\t----")
				for i, c := range d.Cards() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%d\n",
						i+1, c.Front, c.Back, c.Interval, c.Due.Format("2006-01-02 15:04"), c.Repetitions)
				}
				return false, w.Flush()
			})
		},
	}
}
