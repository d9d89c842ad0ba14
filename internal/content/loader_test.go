package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecord(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func record(title, owner, status string) string {
	return "---\ntitle: " + title + "\nowner: " + owner + "\nstatus: " + status + "\nenvironment: dev\n---\n"
}

func TestStore_All(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "search-api.mdx", record("search api", "Alice", "in-dev"))
	writeRecord(t, dir, "billing.mdx", record("Billing", "Bob", "deployed"))
	writeRecord(t, dir, "auth.md", record("Auth", "Alice", "blocked"))
	writeRecord(t, dir, "commits.md", "### 2025-01-01\n- x\n")
	writeRecord(t, dir, "notes.txt", "ignored")
	writeRecord(t, dir, "broken.mdx", "no frontmatter here")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mdx"), 0o755))

	var skipped []string
	store := NewStore(dir, "commits.md")
	store.OnSkip = func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
		assert.ErrorIs(t, err, ErrMissingFrontMatter)
	}

	all, err := store.All()
	require.NoError(t, err)

	var slugs []string
	for _, d := range all {
		slugs = append(slugs, d.Slug)
	}
	assert.Equal(t, []string{"auth", "billing", "search-api"}, slugs)
	assert.Equal(t, []string{"broken.mdx"}, skipped)
}

func TestStore_All_PrefersMDX(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "x.md", record("From MD", "Alice", "in-dev"))
	writeRecord(t, dir, "x.mdx", record("From MDX", "Alice", "in-dev"))

	all, err := NewStore(dir).All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "From MDX", all[0].Title())

	got, err := NewStore(dir).Get("x")
	require.NoError(t, err)
	assert.Equal(t, "From MDX", got.Title())
}

func TestStore_All_MissingDir(t *testing.T) {
	t.Parallel()

	all, err := NewStore(filepath.Join(t.TempDir(), "missing")).All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Get(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "search-api.mdx", record("Search API", "Alice", "in-review")+"\n### 2025-03-01\nWork.\n")
	writeRecord(t, dir, "commits.md", "### 2025-01-01\n- x\n")

	store := NewStore(dir, "commits.md")

	d, err := store.Get("search-api")
	require.NoError(t, err)
	assert.Equal(t, "search-api", d.Slug)
	assert.Equal(t, StatusInReview, d.Status())
	assert.Contains(t, d.Content, "### 2025-03-01")

	tests := map[string]string{
		"missing":       "nope",
		"traversal":     "../etc/passwd",
		"separator":     "a/b",
		"empty":         "",
		"excluded file": "commits",
	}
	for name, slug := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(slug)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "commits.md", "### 2025-01-01\n- x\n")
	store := NewStore(dir)

	text, err := store.ReadFile("commits.md")
	require.NoError(t, err)
	assert.Equal(t, "### 2025-01-01\n- x\n", text)

	text, err = store.ReadFile("absent.md")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDeliverable_Anchor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SEARCH_API_V2", Deliverable{Slug: "search-api-v2"}.Anchor())
}
