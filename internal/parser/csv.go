package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/flashcards/internal/domain"
)

// Header keys recognised as the first cell of a CSV header row.
const (
	FrontHeader    = "front"
	QuestionHeader = "question"
)

// ParseCSV reads question/answer pairs from the first two fields of each row.
// A first row whose first cell equals headerKey (any case) is skipped, and
// rows with fewer than two fields are ignored.
func ParseCSV(r io.Reader, headerKey string) ([]domain.Flashcard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var cards []domain.Flashcard
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if line == 1 && len(record) > 0 && isHeader(record[0], headerKey) {
			continue
		}
		if len(record) < 2 {
			continue
		}
		cards = append(cards, domain.Flashcard{Question: record[0], Answer: record[1]})
	}
	return cards, nil
}

func isHeader(cell, key string) bool {
	cell = strings.TrimPrefix(cell, "\ufeff")
	return strings.EqualFold(strings.TrimSpace(cell), key)
}
