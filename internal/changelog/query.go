package changelog

import (
	"regexp"
	"strings"
)

// commitAuthorPattern splits `message — *author*` at the last em-dash that is
// directly followed by an asterisk-wrapped name ending the line.
var commitAuthorPattern = regexp.MustCompile(`^(.*\S)\s*—\s*\*([^*]+)\*$`)

// isoDateHeading finds the first `### YYYY-MM-DD` heading of a body.
var isoDateHeading = regexp.MustCompile(`### (\d{4}-\d{2}-\d{2})`)

// LatestEntry returns the text of the first `### ` group of content.
// The second result is false when content has no such heading or when the
// first group has no content lines.
func LatestEntry(content string) (string, bool) {
	return first(Scan(content, LatestStrategy))
}

// LatestSummary is LatestEntry with trailing ` — *author*` attributions
// removed from every line before joining.
func LatestSummary(content string) (string, bool) {
	return first(Scan(content, LatestSummaryStrategy))
}

func first(sections []Section) (string, bool) {
	if len(sections) == 0 {
		return "", false
	}
	return sections[0].Text, true
}

// LastDate returns the first ISO date used as an entry heading in content.
func LastDate(content string) (string, bool) {
	m := isoDateHeading.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseCommits returns the commit log items in document order.
func ParseCommits(content string) []Commit {
	sections := Scan(content, CommitStrategy)
	commits := make([]Commit, 0, len(sections))
	for _, sec := range sections {
		commits = append(commits, splitCommit(sec.Label, sec.Text))
	}
	return commits
}

// splitCommit separates the author attribution from a bullet's text.
func splitCommit(date, text string) Commit {
	m := commitAuthorPattern.FindStringSubmatch(text)
	if m == nil {
		return Commit{Message: text, Date: date}
	}
	return Commit{
		Message: strings.TrimSpace(m[1]),
		Author:  strings.TrimSpace(m[2]),
		Date:    date,
	}
}

// GetLastN returns at most n commits from the front of the feed.
func GetLastN(commits []Commit, n int) []Commit {
	if n <= 0 {
		return []Commit{}
	}
	if len(commits) <= n {
		return commits
	}
	return commits[:n]
}

// DateBreaks reports, for every commit, whether a date separator should be
// rendered above it: the commit has a date that differs from the previous one.
func DateBreaks(commits []Commit) []bool {
	breaks := make([]bool, len(commits))
	prev := ""
	for i, c := range commits {
		breaks[i] = c.Date != "" && (i == 0 || c.Date != prev)
		prev = c.Date
	}
	return breaks
}
