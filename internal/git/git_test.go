package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitAt writes a file and commits it with a fixed author and date.
func commitAt(t *testing.T, repo *git.Repository, dir, msg, author string, when time.Time) {
	t.Helper()

	wt, err := repo.Worktree()
	require.NoError(t, err)

	name := filepath.Join(dir, "log.txt")
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(msg + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = wt.Add("log.txt")
	require.NoError(t, err)

	sig := &object.Signature{Name: author, Email: author + "@example.com", When: when}
	_, err = wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func newRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

func TestCommitLog(t *testing.T) {
	t.Parallel()

	repo, dir := newRepo(t)
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	commitAt(t, repo, dir, "[atlas] Bootstrap repo", "alice", day)
	commitAt(t, repo, dir, "chore: unrelated", "bob", day.Add(time.Hour))
	commitAt(t, repo, dir, "[atlas] Add search\n\nLonger body text.", "bob", day.Add(24*time.Hour))
	commitAt(t, repo, dir, "[atlas]   Fix paging  ", "carol", day.Add(48*time.Hour))

	tests := map[string]struct {
		opts LogOptions
		want []changelog.Commit
	}{
		"prefix filters and is stripped": {
			opts: LogOptions{Prefix: "[atlas]"},
			want: []changelog.Commit{
				{Message: "Fix paging", Author: "carol", Date: "2025-03-03"},
				{Message: "Add search", Author: "bob", Date: "2025-03-02"},
				{Message: "Bootstrap repo", Author: "alice", Date: "2025-03-01"},
			},
		},
		"limit": {
			opts: LogOptions{Prefix: "[atlas]", Limit: 1},
			want: []changelog.Commit{
				{Message: "Fix paging", Author: "carol", Date: "2025-03-03"},
			},
		},
		"no prefix keeps everything": {
			opts: LogOptions{Limit: 2},
			want: []changelog.Commit{
				{Message: "[atlas]   Fix paging", Author: "carol", Date: "2025-03-03"},
				{Message: "[atlas] Add search", Author: "bob", Date: "2025-03-02"},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := CommitLog(context.Background(), dir, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommitLog_SubdirectoryFindsRoot(t *testing.T) {
	t.Parallel()

	repo, dir := newRepo(t)
	commitAt(t, repo, dir, "first", "alice", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	sub := filepath.Join(dir, "content")
	require.NoError(t, os.Mkdir(sub, 0o755))

	got, err := CommitLog(context.Background(), sub, LogOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	root, err := GetRepositoryRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	rev, err := HeadRevision(dir)
	require.NoError(t, err)
	assert.Len(t, rev, 7)
}

func TestCommitLog_EmptyRepository(t *testing.T) {
	t.Parallel()

	_, dir := newRepo(t)

	got, err := CommitLog(context.Background(), dir, LogOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCommitLog_NotARepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := CommitLog(context.Background(), dir, LogOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening repository")
	assert.False(t, IsGitRepository(dir))
}

func TestCommitLog_CancelledContext(t *testing.T) {
	t.Parallel()

	repo, dir := newRepo(t)
	commitAt(t, repo, dir, "first", "alice", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CommitLog(ctx, dir, LogOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSetDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, format)
	})
	defer SetDebugLogger(nil)

	_, dir := newRepo(t)
	assert.True(t, IsGitRepository(dir))
	assert.NotEmpty(t, lines)
}
