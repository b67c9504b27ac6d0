package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCard is returned when a card violates its scheduling invariants.
var ErrInvalidCard = errors.New("invalid card")

// Defaults for a freshly created card.
const (
	InitialInterval = 1
	InitialEase     = 2
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Card is a single scheduled front/back entry of the persistent deck.
type Card struct {
	Front       string    `json:"front"`
	Back        string    `json:"back"`
	Interval    int       `json:"interval" validate:"min=1"`
	Due         time.Time `json:"due"`
	Repetitions int       `json:"repetitions" validate:"min=0"`
	Ease        int       `json:"ease" validate:"min=0,max=3"`
	LastRating  *int      `json:"last_rating" validate:"omitempty,min=0,max=3"`
}

// NewCard creates a card that is due immediately.
func NewCard(front, back string, now time.Time) Card {
	return Card{
		Front:    front,
		Back:     back,
		Interval: InitialInterval,
		Due:      Timestamp(now),
		Ease:     InitialEase,
	}
}

// NormalizeRatings maps an ease or last rating outside 0..3 to 0. Older
// decks stored whatever number was typed at the rating prompt.
func (c *Card) NormalizeRatings() {
	c.Ease = normalizeRating(c.Ease)
	if c.LastRating != nil {
		r := normalizeRating(*c.LastRating)
		c.LastRating = &r
	}
}

func normalizeRating(r int) int {
	if r < 0 || r > 3 {
		return 0
	}
	return r
}

// Validate checks the card's invariants.
func (c Card) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidCard, c.Front, err)
	}
	return nil
}

// Flashcard is an unscheduled question/answer pair.
type Flashcard struct {
	Question string
	Answer   string
}

func (f Flashcard) String() string {
	return fmt.Sprintf("Q: %s | A: %s", f.Question, f.Answer)
}
