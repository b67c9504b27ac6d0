// Package srs implements the SM-2-lite scheduling rule: a rating from 0 to 3
// selects a fixed interval growth, and the card becomes due that many days out.
package srs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/flashcards/internal/domain"
)

// Rating is the user's self-assessed recall quality.
type Rating int

const (
	Forgot Rating = iota // reset
	Hard                 // no growth
	Medium               // double
	Easy                 // triple
)

var ratingNames = [...]string{Forgot: "forgot", Hard: "hard", Medium: "medium", Easy: "easy"}

// String returns the lowercase name of the rating.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is within Forgot..Easy.
func (r Rating) IsValid() bool {
	return r >= Forgot && r <= Easy
}

// Normalize maps anything outside Forgot..Easy to Forgot.
func (r Rating) Normalize() Rating {
	if !r.IsValid() {
		return Forgot
	}
	return r
}

// ParseRating reads a rating typed by the user. Malformed input is Forgot.
func ParseRating(s string) Rating {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Forgot
	}
	return Rating(n).Normalize()
}

// NextInterval returns the interval in days that follows interval under rating.
func NextInterval(interval int, rating Rating) int {
	switch rating.Normalize() {
	case Hard:
		return max(1, interval)
	case Medium:
		return interval * 2
	case Easy:
		return interval * 3
	default:
		return 1
	}
}

// NextDueDate is now plus the given number of whole days.
func NextDueDate(now time.Time, interval int) time.Time {
	return domain.Timestamp(now).Add(time.Duration(interval) * 24 * time.Hour)
}

// Review applies a rating to a card reviewed at now and returns the updated card.
func Review(card domain.Card, rating Rating, now time.Time) domain.Card {
	rating = rating.Normalize()
	r := int(rating)

	card.Interval = NextInterval(card.Interval, rating)
	card.Due = NextDueDate(now, card.Interval)
	card.Repetitions++
	card.Ease = r
	card.LastRating = &r
	return card
}

// IsDue reports whether the card is eligible for review at now.
func IsDue(card domain.Card, now time.Time) bool {
	return !card.Due.After(now)
}
