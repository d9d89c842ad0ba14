// Package git derives the dashboard's commit feed from repository history.
// It uses the go-git library so no git binary is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// DateLayout is the commit date format of the feed.
const DateLayout = "2006-01-02"

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// GetRepositoryRoot returns the root directory of the repository containing path.
func GetRepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	return wt.Filesystem.Root(), nil
}

// IsGitRepository reports whether path is inside a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// HeadRevision returns the abbreviated hash of HEAD.
func HeadRevision(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String()[:7], nil
}

// LogOptions filters the commit feed.
type LogOptions struct {
	// Prefix selects commits whose subject starts with it; it is stripped from
	// the message. Empty keeps every commit.
	Prefix string
	// Limit caps the number of commits returned. 0 means no limit.
	Limit int
}

// CommitLog returns the commits reachable from HEAD, newest first, as feed
// entries: subject line as message, author name, author date as YYYY-MM-DD.
// A repository without commits yields an empty feed.
func CommitLog(ctx context.Context, path string, opts LogOptions) ([]changelog.Commit, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []changelog.Commit{}, nil
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer iter.Close()

	commits := []changelog.Commit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, ok := toEntry(c, opts.Prefix)
		if !ok {
			return nil
		}
		commits = append(commits, entry)
		if opts.Limit > 0 && len(commits) >= opts.Limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] collected %d commits", len(commits))
	return commits, nil
}

// toEntry converts a commit to a feed entry, reporting false when the subject
// does not carry the prefix.
func toEntry(c *object.Commit, prefix string) (changelog.Commit, bool) {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	subject = strings.TrimSpace(subject)

	if prefix != "" {
		if !strings.HasPrefix(subject, prefix) {
			return changelog.Commit{}, false
		}
		subject = strings.TrimSpace(strings.TrimPrefix(subject, prefix))
	}

	return changelog.Commit{
		Message: subject,
		Author:  c.Author.Name,
		Date:    c.Author.When.Format(DateLayout),
	}, true
}
