package deck

import (
	"errors"
	"io"

	"github.com/conorfennell/flashcards/internal/srs"
)

const ratingPrompt = "How did you do? (0=forgot, 1=hard, 2=medium, 3=easy): "

// Prompter is the console surface a review pass needs.
type Prompter interface {
	Ask(prompt string) (string, error)
	Say(a ...any)
}

// Review runs one pass over the cards due now, in stored order, and returns
// how many were rated. Running out of input ends the pass early; cards
// rated before that keep their new schedule.
func (d *Deck) Review(p Prompter) (int, error) {
	now := d.now()
	due := d.Due(now)
	if len(due) == 0 {
		p.Say("No cards due for review.")
		return 0, nil
	}

	reviewed := 0
	for _, i := range due {
		card := d.cards[i]
		p.Say("Front:", card.Front)
		if _, err := p.Ask("Press Enter to show answer..."); err != nil {
			return reviewed, endOfInput(err)
		}
		p.Say("Back:", card.Back)

		answer, err := p.Ask(ratingPrompt)
		if err != nil {
			return reviewed, endOfInput(err)
		}
		rating := srs.ParseRating(answer)
		updated := d.Rate(i, rating, now)
		reviewed++

		d.logger.Debug("Card reviewed",
			"front", card.Front,
			"rating", rating.String(),
			"interval", updated.Interval,
			"due", updated.Due,
		)
	}
	return reviewed, nil
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
