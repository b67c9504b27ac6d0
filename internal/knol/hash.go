package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/flashcards/internal/domain"
)

// Normalize joins the question and answer after trimming, lowercasing and
// normalizing line endings of each.
func Normalize(card domain.Flashcard) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Newline keeps "question" and "answer" from fusing into one word.
	return normalizePart(card.Question) + "\n" + normalizePart(card.Answer)
}

// Hash returns the hex SHA-256 of the normalized card content.
func Hash(card domain.Flashcard) string {
	hashBytes := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", hashBytes)
}

// HashCard hashes the front and back of a scheduled card.
func HashCard(card domain.Card) string {
	return Hash(domain.Flashcard{Question: card.Front, Answer: card.Back})
}
