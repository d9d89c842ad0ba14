package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	dateStyle   = color.New(color.FgCyan, color.Bold)
	authorStyle = color.New(color.FgYellow)
	bulletStyle = color.New(color.FgGreen)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatEntries writes changelog entries to w, one dated block per entry.
func FormatEntries(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeDateHeader(e.Date, w, opts); err != nil {
			return fmt.Errorf("writing header for %s: %w", e.Date, err)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", wrapText(e.Text, width-2, "  ")); err != nil {
			return err
		}
	}

	return nil
}

// FormatCommits writes the commit feed to w, inserting a date header
// whenever the date changes.
func FormatCommits(commits []Commit, w io.Writer, opts FormatOptions) error {
	if len(commits) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)
	breaks := DateBreaks(commits)

	for i, c := range commits {
		if breaks[i] {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeDateHeader(c.Date, w, opts); err != nil {
				return fmt.Errorf("writing header for %s: %w", c.Date, err)
			}
		}
		if err := writeCommit(c, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeDateHeader writes the date header line.
func writeDateHeader(date string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", date)
		return err
	}
	_, err := fmt.Fprintf(w, "## %s\n", dateStyle.Sprint(date))
	return err
}

// writeCommit writes a single commit line with optional wrapping.
func writeCommit(c Commit, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := c.Message

	if opts.Plain {
		if c.HasAuthor() {
			text += " — " + c.Author
		}
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	if c.HasAuthor() {
		wrapped += " " + authorStyle.Sprint("— "+c.Author)
	}
	_, err := fmt.Fprintf(w, "%s%s\n", bulletStyle.Sprint(prefix), wrapped)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
