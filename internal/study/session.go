package study

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/flashcards/internal/domain"
)

// Prompter is the console surface the interactive programs need.
type Prompter interface {
	Ask(prompt string) (string, error)
	Say(a ...any)
	Sayf(format string, a ...any)
}

// Score is the tally of one study session.
type Score struct {
	Correct int
	Total   int
}

// Percent is the share of correct answers, or 0 when nothing was answered.
func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", s.Correct, s.Total, s.Percent())
}

// Run walks cards in order. For each card the user reveals the answer,
// skips with "s" or quits with "q", then judges themselves with y or n.
// The session ends on quit, end of input, or after the last card.
func Run(p Prompter, cards []domain.Flashcard) (Score, error) {
	var score Score
	if len(cards) == 0 {
		p.Say("No flashcards available. Please load some first.")
		return score, nil
	}

	p.Sayf("\nStarting study session with %d cards.\n", len(cards))
	p.Say("Press Enter to reveal answer, 'q' to quit, 's' to skip.")
	p.Say()

	for i, card := range cards {
		p.Sayf("Card %d/%d\n", i+1, len(cards))
		p.Say("Question:", card.Question)

		input, err := p.Ask("Press Enter to see answer (or 'q' to quit, 's' to skip): ")
		if err != nil {
			return score, endOfInput(err)
		}
		switch strings.ToLower(input) {
		case "q":
			return score, nil
		case "s":
			p.Say("Skipped!")
			p.Say()
			continue
		}

		p.Say("Answer:", card.Answer)

		correct, err := askCorrect(p)
		if err != nil {
			return score, endOfInput(err)
		}
		score.Total++
		if correct {
			score.Correct++
			p.Say("Great job!")
		} else {
			p.Say("Keep studying!")
		}
		p.Say()
	}
	return score, nil
}

func askCorrect(p Prompter) (bool, error) {
	for {
		response, err := p.Ask("Did you get it right? (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Say("Please enter 'y' for yes or 'n' for no.")
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
