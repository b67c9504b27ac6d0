package sync

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/flashcards/internal/deck"
	"github.com/conorfennell/flashcards/internal/gitsource"
	"github.com/conorfennell/flashcards/internal/knol"
)

// Result counts what a sync did.
type Result struct {
	Files   int
	Parsed  int
	Added   int
	Skipped int
	Errors  []error
}

// Options controls where remote sources are checked out.
type Options struct {
	ReposDir string
	Progress io.Writer
}

// Run imports every card file below source into d. A git URL is cloned or
// pulled under ReposDir first. Cards already present by content hash are
// skipped, so running the same sync twice adds nothing the second time.
func Run(ctx context.Context, d *deck.Deck, source string, opts Options) (Result, error) {
	root := source
	if gitsource.IsGitURL(source) {
		localRepoPath, err := gitsource.LocalPath(opts.ReposDir, source)
		if err != nil {
			return Result{}, err
		}
		progress := opts.Progress
		if progress == nil {
			progress = io.Discard
		}
		if err := gitsource.Sync(ctx, source, localRepoPath, progress); err != nil {
			return Result{}, err
		}
		root = localRepoPath
	}

	slog.Info("Syncing source", "source", source, "path", root)
	res, err := reconcile(d, root)
	if err != nil {
		return res, err
	}

	slog.Info("reconciliation complete",
		"path", root,
		"files", res.Files,
		"parsed_cards", res.Parsed,
		"added", res.Added,
		"skipped", res.Skipped,
		"errors", len(res.Errors),
	)
	return res, nil
}

func reconcile(d *deck.Deck, root string) (Result, error) {
	var res Result
	known := d.Hashes()

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !isCardFile(entry.Name()) {
			return nil
		}

		res.Files++
		pairs, parseErr := deck.ReadFile(path)
		if parseErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		for _, pair := range pairs {
			res.Parsed++
			hash := knol.Hash(pair)
			if _, found := known[hash]; found {
				res.Skipped++
				continue
			}
			known[hash] = struct{}{}
			d.Add(pair.Question, pair.Answer)
			res.Added++
			slog.Debug("New card found", "hash", hash, "path", path)
		}
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("error walking directory %s: %w", root, walkErr)
	}
	return res, nil
}

func isCardFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".md":
		return true
	}
	return false
}
