package main

import (
	"fmt"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <front> <back>",
		Short: "Add a single card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			front, back := args[0], args[1]
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				d.Add(front, back)
				fmt.Fprintf(cmd.OutOrStdout(), "Added: %s -> %s\n", front, back)
				return true, nil
			})
		},
	}
}
