package gitsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsGitURL reports whether source names a remote repository rather than a local path.
func IsGitURL(source string) bool {
	return strings.HasSuffix(source, ".git") ||
		strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://")
}

// LocalPath maps a repository URL to a checkout directory under baseDir.
func LocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		// scp-like syntax: git@host:owner/repo.git
		if user, rest, ok := strings.Cut(repoURL, "@"); ok && user != "" {
			if host, repoPath, ok := strings.Cut(rest, ":"); ok && host != "" && repoPath != "" {
				return within(baseDir, filepath.Join(baseDir, host, strings.TrimSuffix(repoPath, ".git")), repoURL)
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	if sanitizedPath == "" || sanitizedPath == "/" {
		return "", fmt.Errorf("git URL has no repository path: %s", repoURL)
	}
	return within(baseDir, filepath.Join(baseDir, parsedURL.Host, sanitizedPath), repoURL)
}

// within rejects a checkout path that ".." segments moved outside baseDir.
func within(baseDir, localPath, repoURL string) (string, error) {
	rel, err := filepath.Rel(baseDir, localPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("git URL escapes %s: %s", baseDir, repoURL)
	}
	return localPath, nil
}

// Sync clones a git repository if it doesn't exist at the given path,
// or pulls the latest changes if it does. Progress goes to progress.
func Sync(ctx context.Context, repoURL, localPath string, progress io.Writer) error {
	_, err := os.Stat(localPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("Cloning repository", "url", repoURL, "path", localPath)
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL:      repoURL,
			Progress: progress,
		})
		if err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", repoURL, err)
		}
		slog.Info("Clone successful", "path", localPath)
	case err == nil:
		slog.Info("Pulling latest changes", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
		}

		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
		}

		err = worktree.PullContext(ctx, &git.PullOptions{
			RemoteName: "origin",
			Progress:   progress,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
		}
		slog.Info("Pull successful (or already up-to-date)", "path", localPath)
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}

	return nil
}
