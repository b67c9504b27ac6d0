// Package storage persists the whole card collection at once: every command
// reads it fully into memory and writes it back fully after a mutation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conorfennell/flashcards/internal/domain"
)

// Supported storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Store loads and saves a complete card collection.
type Store interface {
	Load(ctx context.Context) ([]domain.Card, error)
	Save(ctx context.Context, cards []domain.Card) error
	Close() error
}

// Open returns the store for driver rooted at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONFile(path), nil
	case DriverSQLite:
		return OpenDB(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// JSONFile stores the collection as an indented JSON array.
type JSONFile struct {
	path string
}

// NewJSONFile returns a store backed by the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads the collection. A missing file is an empty collection.
func (f *JSONFile) Load(ctx context.Context) ([]domain.Card, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Card{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var cards []domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}

// Save replaces the file with the given collection.
func (f *JSONFile) Save(ctx context.Context, cards []domain.Card) error {
	if cards == nil {
		cards = []domain.Card{}
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(f.mode()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set mode on %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// mode keeps the permissions of an existing deck file; new files get 0644.
func (f *JSONFile) mode() fs.FileMode {
	if info, err := os.Stat(f.path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}
