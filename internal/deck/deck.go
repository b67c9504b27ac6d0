// Package deck holds a loaded card collection together with the store it
// came from. A Deck is constructed, loaded, mutated, saved and discarded
// within a single command.
package deck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conorfennell/flashcards/internal/domain"
	"github.com/conorfennell/flashcards/internal/knol"
	"github.com/conorfennell/flashcards/internal/parser"
	"github.com/conorfennell/flashcards/internal/srs"
	"github.com/conorfennell/flashcards/internal/storage"
)

// Deck is the in-memory card collection bound to its store.
type Deck struct {
	store  storage.Store
	cards  []domain.Card
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Deck.
type Option func(*Deck)

// WithClock overrides the time source used for new cards and reviews.
func WithClock(now func() time.Time) Option {
	return func(d *Deck) { d.now = now }
}

// WithLogger sets the logger for load, save and import events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) { d.logger = logger }
}

// New returns an empty deck bound to store. Call Load before use.
func New(store storage.Store, opts ...Option) *Deck {
	d := &Deck{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load replaces the in-memory collection with the stored one.
func (d *Deck) Load(ctx context.Context) error {
	cards, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
	}
	d.cards = cards
	d.logger.Debug("Deck loaded", "cards", len(cards))
	return nil
}

// Save writes the whole collection back to the store.
func (d *Deck) Save(ctx context.Context) error {
	if err := d.store.Save(ctx, d.cards); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	d.logger.Debug("Deck saved", "cards", len(d.cards))
	return nil
}

// Now returns the deck's current time.
func (d *Deck) Now() time.Time {
	return d.now()
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the collection in stored order.
func (d *Deck) Cards() []domain.Card {
	out := make([]domain.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Add appends a new card due now.
func (d *Deck) Add(front, back string) domain.Card {
	card := domain.NewCard(front, back, d.now())
	d.cards = append(d.cards, card)
	return card
}

// AddFlashcards appends one new card per pair and returns how many were added.
func (d *Deck) AddFlashcards(pairs []domain.Flashcard) int {
	for _, p := range pairs {
		d.Add(p.Question, p.Answer)
	}
	return len(pairs)
}

// Import appends one card per CSV row read from r.
func (d *Deck) Import(r io.Reader) (int, error) {
	pairs, err := parser.ParseCSV(r, parser.FrontHeader)
	if err != nil {
		return 0, err
	}
	return d.AddFlashcards(pairs), nil
}

// ImportFile imports a CSV file, or a Q:/A: markdown file when the name ends in .md.
func (d *Deck) ImportFile(path string) (int, error) {
	pairs, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	n := d.AddFlashcards(pairs)
	d.logger.Info("Imported cards", "path", path, "count", n)
	return n, nil
}

// ReadFile parses a card file by extension without touching any deck.
func ReadFile(path string) ([]domain.Flashcard, error) {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		pairs, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return pairs, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pairs, err := parser.ParseCSV(file, parser.FrontHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pairs, nil
}

// Due returns the indexes of cards due at now, in stored order.
func (d *Deck) Due(now time.Time) []int {
	var due []int
	for i, c := range d.cards {
		if srs.IsDue(c, now) {
			due = append(due, i)
		}
	}
	return due
}

// Rate applies a rating to the card at index i and returns the updated card.
func (d *Deck) Rate(i int, rating srs.Rating, now time.Time) domain.Card {
	d.cards[i] = srs.Review(d.cards[i], rating, now)
	return d.cards[i]
}

// Hashes returns the content hashes of every card.
func (d *Deck) Hashes() map[string]struct{} {
	hashes := make(map[string]struct{}, len(d.cards))
	for _, c := range d.cards {
		hashes[knol.HashCard(c)] = struct{}{}
	}
	return hashes
}

// Stats summarises the collection.
type Stats struct {
	Total       int
	Due         int
	AverageEase float64
	Repetitions int
}

// Stats computes aggregate figures at now.
func (d *Deck) Stats(now time.Time) Stats {
	s := Stats{Total: len(d.cards)}
	ease := 0
	for _, c := range d.cards {
		if srs.IsDue(c, now) {
			s.Due++
		}
		ease += c.Ease
		s.Repetitions += c.Repetitions
	}
	if s.Total > 0 {
		s.AverageEase = float64(ease) / float64(s.Total)
	}
	return s
}
