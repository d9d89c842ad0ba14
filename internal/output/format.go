// Package output provides terminal output helpers for the statusboard CLI.
// It has no internal dependencies so any command can use it.
package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintRule prints a faint separator with a centered label.
func PrintRule(out io.Writer, label string, width int) {
	faint := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (width - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", faint(line), faint(label), faint(line))
}

// PrintHeader prints a bold section header.
func PrintHeader(out io.Writer, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", cyan(title))
}

// PrintSuccess prints a green checkmark and a message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintKeyValue prints an aligned label and value.
func PrintKeyValue(out io.Writer, label string, value any) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s %v\n", dim(fmt.Sprintf("%-12s", label+":")), value)
}

// Segment is one colored part of a bar. Share is in percent.
type Segment struct {
	Share float64
	Color color.Attribute
}

// Bar renders a stacked bar of width cells. Segments fill from the left and
// the remainder is drawn as a faint track.
func Bar(width int, segments ...Segment) string {
	var sb strings.Builder
	used := 0
	for _, s := range segments {
		n := int(math.Round(s.Share * float64(width) / 100))
		if n > width-used {
			n = width - used
		}
		if n <= 0 {
			continue
		}
		sb.WriteString(color.New(s.Color).Sprint(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		sb.WriteString(color.New(color.Faint).Sprint(strings.Repeat("░", width-used)))
	}
	return sb.String()
}
