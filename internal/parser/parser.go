package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/flashcards/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	contextPrefix  = "C:"
	separator      = "---"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
	readingContext
)

// ParseFile reads a markdown file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.Flashcard, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseMarkdown(file)
}

// ParseMarkdown extracts Q:/A: blocks from r. C: blocks are read but dropped.
func ParseMarkdown(r io.Reader) ([]domain.Flashcard, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Flashcard
	var current domain.Flashcard
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Question != "" {
			cards = append(cards, current)
		}
		current = domain.Flashcard{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}

		prefix, next := "", seeking
		switch {
		case strings.HasPrefix(line, questionPrefix):
			prefix, next = questionPrefix, readingQuestion
		case strings.HasPrefix(line, answerPrefix):
			prefix, next = answerPrefix, readingAnswer
		case strings.HasPrefix(line, contextPrefix):
			prefix, next = contextPrefix, readingContext
		}

		if next == seeking {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingQuestion && currentState != seeking {
			finishCard() // a new question always starts a new card
		} else {
			flushBlock()
		}
		currentState = next
		block = append(block, strings.TrimPrefix(line[len(prefix):], " "))
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return trimTrailingBlank(cards), nil
}

// trimTrailingBlank drops blank lines that trail a block before the next prefix.
func trimTrailingBlank(cards []domain.Flashcard) []domain.Flashcard {
	for i := range cards {
		cards[i].Question = strings.TrimRight(cards[i].Question, "\n")
		cards[i].Answer = strings.TrimRight(cards[i].Answer, "\n")
	}
	return cards
}
