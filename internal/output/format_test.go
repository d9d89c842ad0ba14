package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestBar(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		segments []Segment
		want     string
	}{
		"empty": {
			want: "░░░░░░░░░░",
		},
		"half shipped": {
			segments: []Segment{{Share: 50, Color: color.FgGreen}},
			want:     "█████░░░░░",
		},
		"stacked": {
			segments: []Segment{{Share: 30, Color: color.FgGreen}, {Share: 20, Color: color.FgYellow}},
			want:     "█████░░░░░",
		},
		"overflow is clamped": {
			segments: []Segment{{Share: 80, Color: color.FgGreen}, {Share: 80, Color: color.FgRed}},
			want:     "██████████",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Bar(10, tt.segments...)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 10, len([]rune(got)))
		})
	}
}

func TestPrintRule(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintRule(&buf, "Atlas", 20)

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Equal(t, "────── Atlas ──────", line)
}

func TestPrintHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintHeader(&buf, "On track")
	PrintSuccess(&buf, "exported 6 pages")
	PrintKeyValue(&buf, "Records", 4)

	assert.Equal(t, "\nOn track\n✓ exported 6 pages\n  Records:     4\n", buf.String())
}

func TestGetTerminalWidth(t *testing.T) {
	t.Parallel()
	assert.Positive(t, GetTerminalWidth())
}
