package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		run  func(s *Spinner)
		want string
	}{
		"success": {
			run:  func(s *Spinner) { s.Success("6 pages") },
			want: "[OK] Building site: 6 pages\n",
		},
		"failure": {
			run:  func(s *Spinner) { s.Fail("permission denied") },
			want: "[FAIL] Building site: permission denied\n",
		},
		"no detail": {
			run:  func(s *Spinner) { s.Success("") },
			want: "[OK] Building site\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSpinner(&buf, TerminalCapabilities{})
			s.Start("Building site")
			tt.run(s)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDetectTerminalCapabilities_ASCII(t *testing.T) {
	t.Setenv(ASCIIEnv, "1")

	caps := DetectTerminalCapabilities()
	assert.False(t, caps.SupportsUnicode)
}
