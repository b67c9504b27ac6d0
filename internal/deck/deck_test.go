package deck

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conorfennell/flashcards/internal/console"
	"github.com/conorfennell/flashcards/internal/domain"
	"github.com/conorfennell/flashcards/internal/storage"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

func newTestDeck(t *testing.T) (*Deck, *storage.JSONFile) {
	t.Helper()
	store := storage.NewJSONFile(filepath.Join(t.TempDir(), "flashcards.json"))
	d := New(store, WithClock(func() time.Time { return fixedNow }))
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	return d, store
}

func TestAddAndSave(t *testing.T) {
	ctx := context.Background()
	d, store := newTestDeck(t)

	card := d.Add("uno", "one")
	if card.Interval != 1 || !card.Due.Equal(fixedNow) {
		t.Errorf("Expected a new card due now with interval 1, got %+v", card)
	}
	if err := d.Save(ctx); err != nil {
		t.Fatalf("Save() returned an unexpected error: %v", err)
	}

	reloaded := New(store)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	if reloaded.Len() != 1 || reloaded.Cards()[0].Front != "uno" {
		t.Errorf("Expected the added card after reload, got %+v", reloaded.Cards())
	}
}

func TestImport(t *testing.T) {
	d, _ := newTestDeck(t)

	n, err := d.Import(strings.NewReader("q1,a1\nq2,a2\n"))
	if err != nil {
		t.Fatalf("Import() returned an unexpected error: %v", err)
	}
	if n != 2 || d.Len() != 2 {
		t.Fatalf("Expected exactly 2 cards, got n=%d len=%d", n, d.Len())
	}
	for i, want := range [][2]string{{"q1", "a1"}, {"q2", "a2"}} {
		c := d.Cards()[i]
		if c.Front != want[0] || c.Back != want[1] || c.Interval != 1 {
			t.Errorf("Card %d: expected %s/%s interval 1, got %+v", i, want[0], want[1], c)
		}
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "words.csv")
	os.WriteFile(csvPath, []byte("front,back\nsol,sun\n"), 0o644)
	mdPath := filepath.Join(dir, "notes.md")
	os.WriteFile(mdPath, []byte("Q: luna\nA: moon\n---\nQ: mar\nA: sea\n"), 0o644)

	testCases := []struct {
		name     string
		path     string
		expected int
		notExist bool
	}{
		{name: "csv", path: csvPath, expected: 1},
		{name: "markdown", path: mdPath, expected: 2},
		{name: "missing", path: filepath.Join(dir, "nope.csv"), notExist: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newTestDeck(t)
			n, err := d.ImportFile(tc.path)
			if tc.notExist {
				if !errors.Is(err, fs.ErrNotExist) {
					t.Fatalf("Expected a not-exist error, got %v", err)
				}
				if d.Len() != 0 {
					t.Errorf("Expected no cards after a failed import, got %d", d.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("ImportFile() returned an unexpected error: %v", err)
			}
			if n != tc.expected || d.Len() != tc.expected {
				t.Errorf("Expected %d cards, got n=%d len=%d", tc.expected, n, d.Len())
			}
		})
	}
}

func TestLoadRejectsInvalidCards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashcards.json")
	os.WriteFile(path, []byte(`[{"front":"q","back":"a","interval":0,"due":"2024-01-01T00:00:00","repetitions":0,"ease":2,"last_rating":null}]`), 0o644)

	err := New(storage.NewJSONFile(path)).Load(context.Background())
	if !errors.Is(err, domain.ErrInvalidCard) {
		t.Fatalf("Expected ErrInvalidCard, got %v", err)
	}
}

func TestLoadNormalisesLegacyRatings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashcards.json")
	os.WriteFile(path, []byte(`[{"front":"q","back":"a","interval":4,"due":"2024-01-01T00:00:00.000000","repetitions":2,"ease":5,"last_rating":5}]`), 0o644)

	d := New(storage.NewJSONFile(path))
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	c := d.Cards()[0]
	if c.Ease != 0 || c.LastRating == nil || *c.LastRating != 0 || c.Interval != 4 {
		t.Errorf("Expected ratings normalised to 0 and interval kept, got %+v", c)
	}
}

func TestSaveKeepsDueAcrossReload(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.Local)
	store := storage.NewJSONFile(filepath.Join(t.TempDir(), "flashcards.json"))
	d := New(store, WithClock(func() time.Time { return now }))
	if err := d.Load(ctx); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}

	d.Add("nuevo", "new")
	d.Add("viejo", "old")
	d.Rate(1, 3, now)
	if err := d.Save(ctx); err != nil {
		t.Fatalf("Save() returned an unexpected error: %v", err)
	}

	reloaded := New(store)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	before, after := d.Cards(), reloaded.Cards()
	for i := range before {
		if !before[i].Due.Equal(after[i].Due) {
			t.Errorf("Card %d: due %v changed to %v after reload", i, before[i].Due, after[i].Due)
		}
	}
}

func TestDue(t *testing.T) {
	d, _ := newTestDeck(t)
	d.cards = []domain.Card{
		domain.NewCard("future", "f", fixedNow.Add(time.Hour)),
		domain.NewCard("past", "p", fixedNow.Add(-time.Hour)),
		domain.NewCard("now", "n", fixedNow),
	}

	due := d.Due(fixedNow)
	if len(due) != 2 || due[0] != 1 || due[1] != 2 {
		t.Errorf("Expected indexes [1 2] in stored order, got %v", due)
	}
}

func TestReview(t *testing.T) {
	t.Run("rates due cards in stored order", func(t *testing.T) {
		d, _ := newTestDeck(t)
		d.cards = []domain.Card{
			domain.NewCard("a", "1", fixedNow),
			domain.NewCard("later", "x", fixedNow.Add(24*time.Hour)),
			domain.NewCard("b", "2", fixedNow.Add(-time.Hour)),
		}
		var out bytes.Buffer
		p := console.New(strings.NewReader("\n3\n\nnonsense\n"), &out)

		n, err := d.Review(p)
		if err != nil {
			t.Fatalf("Review() returned an unexpected error: %v", err)
		}
		if n != 2 {
			t.Fatalf("Expected 2 reviewed cards, got %d", n)
		}

		cards := d.Cards()
		if cards[0].Interval != 3 || !cards[0].Due.Equal(fixedNow.Add(72*time.Hour)) || cards[0].Repetitions != 1 {
			t.Errorf("Expected easy rating on first card, got %+v", cards[0])
		}
		if cards[1].Repetitions != 0 {
			t.Errorf("Expected card not yet due to be untouched, got %+v", cards[1])
		}
		if cards[2].Interval != 1 || cards[2].Ease != 0 || *cards[2].LastRating != 0 {
			t.Errorf("Expected malformed rating to count as forgot, got %+v", cards[2])
		}
		if !strings.Contains(out.String(), "Front: a") || strings.Contains(out.String(), "Front: later") {
			t.Errorf("Unexpected review transcript:\n%s", out.String())
		}
	})

	t.Run("nothing due", func(t *testing.T) {
		d, _ := newTestDeck(t)
		d.cards = []domain.Card{domain.NewCard("later", "x", fixedNow.Add(time.Hour))}
		var out bytes.Buffer
		n, err := d.Review(console.New(strings.NewReader(""), &out))
		if err != nil || n != 0 {
			t.Fatalf("Expected no reviews and no error, got %d, %v", n, err)
		}
		if !strings.Contains(out.String(), "No cards due for review.") {
			t.Errorf("Expected nothing-due message, got %q", out.String())
		}
	})

	t.Run("end of input keeps earlier ratings", func(t *testing.T) {
		d, _ := newTestDeck(t)
		d.cards = []domain.Card{
			domain.NewCard("a", "1", fixedNow),
			domain.NewCard("b", "2", fixedNow),
		}
		n, err := d.Review(console.New(strings.NewReader("\n2\n"), &bytes.Buffer{}))
		if err != nil {
			t.Fatalf("Review() returned an unexpected error: %v", err)
		}
		if n != 1 {
			t.Fatalf("Expected 1 reviewed card, got %d", n)
		}
		if d.Cards()[0].Interval != 2 || d.Cards()[1].Repetitions != 0 {
			t.Errorf("Unexpected cards after partial review: %+v", d.Cards())
		}
	})
}

func TestStats(t *testing.T) {
	d, _ := newTestDeck(t)
	if s := d.Stats(fixedNow); s.Total != 0 || s.AverageEase != 0 {
		t.Errorf("Expected zero stats for an empty deck, got %+v", s)
	}

	d.Add("a", "1")
	d.Add("b", "2")
	d.Rate(1, 3, fixedNow)

	s := d.Stats(fixedNow)
	if s.Total != 2 || s.Due != 1 || s.Repetitions != 1 {
		t.Errorf("Unexpected stats %+v", s)
	}
	if s.AverageEase != 2.5 {
		t.Errorf("Expected average ease 2.5, got %.2f", s.AverageEase)
	}
}

func TestHashes(t *testing.T) {
	d, _ := newTestDeck(t)
	d.Add("Hola", "Hello")
	d.Add("hola ", "hello")

	if len(d.Hashes()) != 1 {
		t.Errorf("Expected normalised duplicates to share a hash, got %d hashes", len(d.Hashes()))
	}
}
