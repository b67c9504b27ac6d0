package study

import (
	"errors"
	"io/fs"
	"log/slog"
	"math/rand/v2"
)

// Menu is the numbered top-level loop of the interactive program.
type Menu struct {
	Deck       *Deck
	Prompter   Prompter
	DefaultCSV string
	Rand       *rand.Rand
}

// Run shows the menu until the user quits or input ends.
func (m *Menu) Run() error {
	p := m.Prompter
	p.Say("Welcome to the Flashcard Application!")
	p.Say("=====================================")

	for {
		p.Say()
		p.Say("Options:")
		p.Say("1. Load flashcards from CSV file")
		p.Say("2. Add a flashcard manually")
		p.Say("3. View all flashcards")
		p.Say("4. Shuffle deck")
		p.Say("5. Start study session")
		p.Say("6. Quit")

		choice, err := p.Ask("\nEnter your choice (1-6): ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.load()
		case "2":
			err = m.add()
		case "3":
			m.view()
		case "4":
			m.Deck.Shuffle(m.Rand)
			p.Say("Deck shuffled!")
		case "5":
			err = m.study()
		case "6":
			p.Say("Thanks for using the Flashcard Application!")
			return nil
		default:
			p.Say("Invalid choice. Please enter a number between 1 and 6.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) load() error {
	p := m.Prompter
	filename, err := p.Ask("Enter CSV filename (default: " + m.DefaultCSV + "): ")
	if err != nil {
		return err
	}
	if filename == "" {
		filename = m.DefaultCSV
	}

	n, err := m.Deck.LoadCSV(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.Sayf("Error: File '%s' not found.\n", filename)
	case err != nil:
		slog.Warn("Failed to load CSV", "path", filename, "error", err)
		p.Sayf("Error loading file: %v\n", err)
	default:
		p.Sayf("Loaded %d flashcards from %s\n", n, filename)
	}
	return nil
}

func (m *Menu) add() error {
	p := m.Prompter
	question, err := p.Ask("Enter question: ")
	if err != nil {
		return err
	}
	answer, err := p.Ask("Enter answer: ")
	if err != nil {
		return err
	}
	if question == "" || answer == "" {
		p.Say("Both question and answer are required.")
		return nil
	}
	m.Deck.Add(question, answer)
	p.Say("Flashcard added!")
	return nil
}

func (m *Menu) view() {
	p := m.Prompter
	if m.Deck.Len() == 0 {
		p.Say("No flashcards in deck.")
		return
	}
	p.Sayf("\nAll flashcards (%d):\n", m.Deck.Len())
	for i, card := range m.Deck.Cards() {
		p.Sayf("%d. %s\n", i+1, card)
	}
}

func (m *Menu) study() error {
	score, err := Run(m.Prompter, m.Deck.Cards())
	if err != nil {
		return err
	}
	if score.Total > 0 {
		m.Prompter.Say("Study session complete!")
		m.Prompter.Say("Score:", score)
	}
	return nil
}
