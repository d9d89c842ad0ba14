package dashboard

import (
	"context"
	"path/filepath"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/config"
	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/git"
	"github.com/ariel-frischer/statusboard/internal/issues"
)

// CommitSource produces the commit feed, newest first.
type CommitSource interface {
	Commits(ctx context.Context) ([]changelog.Commit, error)
}

// IssueFetcher reads the tracker issues of a team.
type IssueFetcher interface {
	FetchIssues(ctx context.Context, teamKey string) ([]issues.Issue, error)
}

// FileCommits reads the commit log file from the content directory.
type FileCommits struct {
	Store *content.Store
	Name  string
}

// Commits parses the commit log. A missing file yields no commits.
func (f FileCommits) Commits(_ context.Context) ([]changelog.Commit, error) {
	text, err := f.Store.ReadFile(f.Name)
	if err != nil {
		return nil, err
	}
	return changelog.ParseCommits(text), nil
}

// GitCommits derives the commit feed from repository history.
type GitCommits struct {
	Path   string
	Prefix string
}

// Commits walks the history of the repository at Path.
func (g GitCommits) Commits(ctx context.Context) ([]changelog.Commit, error) {
	return git.CommitLog(ctx, g.Path, git.LogOptions{Prefix: g.Prefix})
}

// NewCommitSource picks the commit source named by the configuration.
func NewCommitSource(cfg *config.Configuration) CommitSource {
	if cfg.CommitSource == "git" {
		return GitCommits{Path: cfg.RepoPath, Prefix: cfg.CommitPrefix}
	}
	path := cfg.CommitLogPath()
	return FileCommits{Store: content.NewStore(filepath.Dir(path)), Name: filepath.Base(path)}
}
