package changelog

import (
	"fmt"
	"strings"
	"testing"
)

// generateLargeBody creates a deliverable body with the specified number of
// dated entries, each spanning a few lines with inline attributions.
func generateLargeBody(entryCount int) string {
	var b strings.Builder

	b.WriteString("# Benchmark deliverable\n\n## Changelog\n\n")
	for i := 0; i < entryCount; i++ {
		fmt.Fprintf(&b, "### 2024-%02d-%02d\n", (i%12)+1, (i%28)+1)
		fmt.Fprintf(&b, "Entry %d with some description text — *dev%d*\n", i, i%4)
		b.WriteString("A second line of detail.\n\n")
	}

	return b.String()
}

// generateLargeCommitLog creates a commit log with ten bullets per date.
func generateLargeCommitLog(commitCount int) string {
	var b strings.Builder

	for i := 0; i < commitCount; i++ {
		if i%10 == 0 {
			fmt.Fprintf(&b, "### 2024-%02d-%02d\n", (i/10%12)+1, (i/10%28)+1)
		}
		fmt.Fprintf(&b, "- Commit %d touching the parser — *dev%d*\n", i, i%4)
	}

	return b.String()
}

// BenchmarkParseChangelog_1000Entries benchmarks the generic changelog scan.
func BenchmarkParseChangelog_1000Entries(b *testing.B) {
	body := generateLargeBody(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if entries := ParseChangelog(body); len(entries) != 1000 {
			b.Fatalf("expected 1000 entries, got %d", len(entries))
		}
	}
}

// BenchmarkLatestSummary_1000Entries benchmarks the early-stop scan.
func BenchmarkLatestSummary_1000Entries(b *testing.B) {
	body := generateLargeBody(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := LatestSummary(body); !ok {
			b.Fatal("expected a latest entry")
		}
	}
}

// BenchmarkParseCommits_1000Commits benchmarks the per-line commit scan.
func BenchmarkParseCommits_1000Commits(b *testing.B) {
	log := generateLargeCommitLog(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if commits := ParseCommits(log); len(commits) != 1000 {
			b.Fatalf("expected 1000 commits, got %d", len(commits))
		}
	}
}

func TestGeneratedFixtures(t *testing.T) {
	t.Parallel()

	entries := ParseChangelog(generateLargeBody(25))
	if len(entries) != 25 {
		t.Fatalf("expected 25 entries, got %d", len(entries))
	}

	commits := ParseCommits(generateLargeCommitLog(25))
	if len(commits) != 25 {
		t.Fatalf("expected 25 commits, got %d", len(commits))
	}
	if commits[24].Author != "dev0" {
		t.Errorf("expected author dev0, got %q", commits[24].Author)
	}
}
