// Package study runs the interactive, in-memory flashcard session. Nothing
// here is persisted; the deck lives for one process run.
package study

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/conorfennell/flashcards/internal/domain"
	"github.com/conorfennell/flashcards/internal/parser"
)

// Deck is an ordered in-memory sequence of flashcards.
type Deck struct {
	cards []domain.Flashcard
}

// Add appends a flashcard.
func (d *Deck) Add(question, answer string) {
	d.cards = append(d.cards, domain.Flashcard{Question: question, Answer: answer})
}

// LoadCSV appends the cards in a question,answer CSV file and returns how many were read.
func (d *Deck) LoadCSV(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	cards, err := parser.ParseCSV(file, parser.QuestionHeader)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	d.cards = append(d.cards, cards...)
	return len(cards), nil
}

// Shuffle reorders the deck uniformly at random using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Cards returns the flashcards in current order.
func (d *Deck) Cards() []domain.Flashcard {
	return d.cards
}

// Len returns the number of flashcards.
func (d *Deck) Len() int {
	return len(d.cards)
}
