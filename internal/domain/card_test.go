package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewCard(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	card := NewCard("hola", "hello", now)

	if card.Interval != 1 {
		t.Errorf("Expected interval 1, got %d", card.Interval)
	}
	if !card.Due.Equal(now) {
		t.Errorf("Expected due %v, got %v", now, card.Due)
	}
	if card.Repetitions != 0 {
		t.Errorf("Expected 0 repetitions, got %d", card.Repetitions)
	}
	if card.Ease != InitialEase {
		t.Errorf("Expected ease %d, got %d", InitialEase, card.Ease)
	}
	if card.LastRating != nil {
		t.Errorf("Expected no last rating, got %d", *card.LastRating)
	}
	if err := card.Validate(); err != nil {
		t.Errorf("Expected new card to be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()
	bad := 7
	testCases := []struct {
		name   string
		mutate func(c *Card)
	}{
		{name: "zero interval", mutate: func(c *Card) { c.Interval = 0 }},
		{name: "negative repetitions", mutate: func(c *Card) { c.Repetitions = -1 }},
		{name: "ease out of range", mutate: func(c *Card) { c.Ease = 4 }},
		{name: "last rating out of range", mutate: func(c *Card) { c.LastRating = &bad }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := NewCard("q", "a", now)
			tc.mutate(&card)
			err := card.Validate()
			if !errors.Is(err, ErrInvalidCard) {
				t.Fatalf("Expected ErrInvalidCard, got %v", err)
			}
		})
	}
}

func TestCardJSON(t *testing.T) {
	t.Run("writes stable keys", func(t *testing.T) {
		card := NewCard("q", "a", time.Date(2024, 1, 2, 3, 4, 5, 600000000, time.Local))
		data, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("Marshal returned an unexpected error: %v", err)
		}
		expected := `{"front":"q","back":"a","interval":1,"due":"2024-01-02T03:04:05.600000","repetitions":0,"ease":2,"last_rating":null}`
		if string(data) != expected {
			t.Errorf("Expected %s, but got %s", expected, data)
		}
	})

	t.Run("reads timestamps without fraction", func(t *testing.T) {
		var card Card
		input := `{"front":"q","back":"a","interval":3,"due":"2024-01-02T03:04:05","repetitions":2,"ease":3,"last_rating":3}`
		if err := json.Unmarshal([]byte(input), &card); err != nil {
			t.Fatalf("Unmarshal returned an unexpected error: %v", err)
		}
		expected := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
		if !card.Due.Equal(expected) {
			t.Errorf("Expected due %v, got %v", expected, card.Due)
		}
		if card.LastRating == nil || *card.LastRating != 3 {
			t.Errorf("Expected last rating 3, got %v", card.LastRating)
		}
	})

	t.Run("missing ease defaults", func(t *testing.T) {
		var card Card
		input := `{"front":"q","back":"a","interval":1,"due":"2024-01-02T03:04:05Z","repetitions":0}`
		if err := json.Unmarshal([]byte(input), &card); err != nil {
			t.Fatalf("Unmarshal returned an unexpected error: %v", err)
		}
		if card.Ease != InitialEase {
			t.Errorf("Expected ease %d, got %d", InitialEase, card.Ease)
		}
	})

	t.Run("out of range ratings read as forgot", func(t *testing.T) {
		var card Card
		input := `{"front":"q","back":"a","interval":2,"due":"2024-01-02T03:04:05.000000","repetitions":3,"ease":5,"last_rating":-1}`
		if err := json.Unmarshal([]byte(input), &card); err != nil {
			t.Fatalf("Unmarshal returned an unexpected error: %v", err)
		}
		if card.Ease != 0 || card.LastRating == nil || *card.LastRating != 0 {
			t.Errorf("Expected ease 0 and last rating 0, got %d and %v", card.Ease, card.LastRating)
		}
		if err := card.Validate(); err != nil {
			t.Errorf("Expected the normalised card to be valid, got %v", err)
		}
	})

	t.Run("round trips sub-microsecond clocks", func(t *testing.T) {
		card := NewCard("q", "a", time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.Local))
		data, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("Marshal returned an unexpected error: %v", err)
		}
		var reloaded Card
		if err := json.Unmarshal(data, &reloaded); err != nil {
			t.Fatalf("Unmarshal returned an unexpected error: %v", err)
		}
		if !reloaded.Due.Equal(card.Due) {
			t.Errorf("Expected due %v after reload, got %v", card.Due, reloaded.Due)
		}
	})

	t.Run("rejects garbage timestamp", func(t *testing.T) {
		var card Card
		err := json.Unmarshal([]byte(`{"front":"q","due":"yesterday"}`), &card)
		if err == nil || !strings.Contains(err.Error(), "yesterday") {
			t.Errorf("Expected timestamp error, got %v", err)
		}
	})
}

func TestFlashcardString(t *testing.T) {
	f := Flashcard{Question: "2+2", Answer: "4"}
	if got := f.String(); got != "Q: 2+2 | A: 4" {
		t.Errorf("Unexpected string %q", got)
	}
}
