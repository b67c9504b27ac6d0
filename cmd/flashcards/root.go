package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/conorfennell/flashcards/internal/config"
	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/conorfennell/flashcards/internal/storage"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "flashcards",
		Short: "CLI Flashcard Review",
		Long: `flashcards keeps a deck of front/back cards on disk and schedules
each card with a simple spaced-repetition rule driven by your ratings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Setup(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	config.RegisterFlags(root.PersistentFlags())
	config.RegisterDeckFlags(root.PersistentFlags())

	root.AddCommand(
		newAddCmd(a),
		newImportCmd(a),
		newReviewCmd(a),
		newStatsCmd(a),
		newListCmd(a),
		newSyncCmd(a),
	)
	return root
}

// withDeck loads the configured deck, runs fn, and saves the deck when fn
// reports that it changed something.
func (a *app) withDeck(ctx context.Context, fn func(d *deck.Deck) (changed bool, err error)) error {
	store, err := storage.Open(a.cfg.Driver, a.cfg.Deck)
	if err != nil {
		return err
	}
	defer store.Close()

	d := deck.New(store, deck.WithLogger(slog.Default()))
	if err := d.Load(ctx); err != nil {
		return err
	}

	changed, err := fn(d)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return d.Save(ctx)
}
