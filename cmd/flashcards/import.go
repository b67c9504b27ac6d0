package main

import (
	"fmt"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <filename>",
		Short: "Bulk-import cards from a CSV (front,back) or Q:/A: markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			return a.withDeck(cmd.Context(), func(d *deck.Deck) (bool, error) {
				n, err := d.ImportFile(filename)
				if err != nil {
					return false, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards from %s\n", n, filename)
				return n > 0, nil
			})
		},
	}
}
