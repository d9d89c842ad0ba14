package changelog

import (
	"regexp"
	"strings"
)

const (
	// EntryHeading marks the start of a dated entry group.
	EntryHeading = "### "
	// SectionHeading marks an unrelated outer section that is never part of an entry.
	SectionHeading = "## "
)

// attributionPattern matches a trailing inline attribution such as ` — *alice*`.
var attributionPattern = regexp.MustCompile(`\s*—\s*\*.*\*$`)

// Strategy classifies the lines of a document for Scan.
// The zero value recognises nothing; use one of the predefined strategies or
// build one from the helpers below.
type Strategy struct {
	// Heading reports whether the trimmed line opens a new group and returns its label.
	Heading func(line string) (string, bool)
	// Skip reports whether the trimmed line is an outer heading to ignore.
	Skip func(line string) bool
	// Keep filters content lines; nil keeps every non-blank line.
	Keep func(line string) bool
	// Transform rewrites a kept line before it is buffered; nil keeps it as is.
	Transform func(line string) string
	// SkipCloses makes an outer heading close the open group instead of being ignored.
	SkipCloses bool
	// FirstOnly stops the scan after the first group has been closed.
	FirstOnly bool
	// PerLine emits every kept line as its own section instead of buffering.
	PerLine bool
	// Unlabeled accepts content lines before any heading, with an empty label.
	Unlabeled bool
}

// HeadingPrefix returns a heading detector for a literal marker prefix.
// The label is the remainder of the line after the marker.
func HeadingPrefix(marker string) func(string) (string, bool) {
	return func(line string) (string, bool) {
		if !strings.HasPrefix(line, marker) {
			return "", false
		}
		return strings.TrimPrefix(line, marker), true
	}
}

// Prefix returns a line predicate matching a literal prefix.
func Prefix(marker string) func(string) bool {
	return func(line string) bool {
		return strings.HasPrefix(line, marker)
	}
}

// StripAttribution removes a trailing ` — *author*` from a line.
func StripAttribution(line string) string {
	return attributionPattern.ReplaceAllString(line, "")
}

var (
	// ChangelogStrategy groups free text under `### ` headings and ignores `## ` headings.
	ChangelogStrategy = Strategy{
		Heading: HeadingPrefix(EntryHeading),
		Skip:    Prefix(SectionHeading),
	}

	// LatestStrategy reads only the first `### ` group, which ends at the next
	// heading of either level.
	LatestStrategy = Strategy{
		Heading:    HeadingPrefix(EntryHeading),
		Skip:       Prefix(SectionHeading),
		SkipCloses: true,
		FirstOnly:  true,
	}

	// LatestSummaryStrategy is LatestStrategy with inline attributions removed.
	LatestSummaryStrategy = Strategy{
		Heading:    HeadingPrefix(EntryHeading),
		Skip:       Prefix(SectionHeading),
		Transform:  StripAttribution,
		SkipCloses: true,
		FirstOnly:  true,
	}

	// CommitStrategy emits every `- ` bullet immediately under the most recent `### ` date.
	CommitStrategy = Strategy{
		Heading: HeadingPrefix(EntryHeading),
		Keep:    Prefix("- "),
		Transform: func(line string) string {
			return strings.TrimSpace(strings.TrimPrefix(line, "- "))
		},
		PerLine:   true,
		Unlabeled: true,
	}
)

// Scan splits text into lines and returns the labelled groups found by the
// strategy, in document order. Each line is trimmed of surrounding whitespace
// before classification. A group with no content lines is never emitted.
func Scan(text string, s Strategy) []Section {
	var (
		sections []Section
		label    string
		open     = s.Unlabeled
		buffered []string
		done     bool
	)

	flush := func() {
		if open && len(buffered) > 0 {
			sections = append(sections, Section{Label: label, Text: strings.Join(buffered, " ")})
		}
		buffered = nil
	}

	// closeGroup ends the open group and reports whether scanning should stop.
	closeGroup := func() bool {
		if !open {
			return false
		}
		flush()
		return s.FirstOnly
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if s.Heading != nil {
			if next, ok := s.Heading(line); ok {
				if closeGroup() {
					done = true
					break
				}
				label, open = next, true
				continue
			}
		}

		if line == "" {
			continue
		}

		if s.Skip != nil && s.Skip(line) {
			if s.SkipCloses && open {
				if closeGroup() {
					done = true
					break
				}
				open = false
			}
			continue
		}

		if !open || (s.Keep != nil && !s.Keep(line)) {
			continue
		}

		if s.Transform != nil {
			if line = s.Transform(line); line == "" {
				continue
			}
		}
		buffered = append(buffered, line)

		if s.PerLine {
			flush()
		}
	}

	if !done {
		flush()
	}

	return sections
}

// ParseChangelog returns the dated entries of a deliverable body.
func ParseChangelog(content string) []Entry {
	sections := Scan(content, ChangelogStrategy)
	entries := make([]Entry, 0, len(sections))
	for _, sec := range sections {
		entries = append(entries, Entry{Date: sec.Label, Text: sec.Text})
	}
	return entries
}
