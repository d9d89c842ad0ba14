package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner reports one running step. On a non-TTY it prints only the final
// line so logs stay readable.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	message string
}

// NewSpinner returns a spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	s := &Spinner{out: out, caps: caps, symbols: SelectSymbols(caps)}
	if caps.IsTTY {
		s.spin = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(out))
		if caps.SupportsColor {
			_ = s.spin.Color("cyan")
		}
	}
	return s
}

// Start begins a step.
func (s *Spinner) Start(message string) {
	s.message = message
	if s.spin == nil {
		return
	}
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Success ends the step with a checkmark and detail.
func (s *Spinner) Success(detail string) {
	s.finish(s.symbols.Checkmark, color.FgGreen, detail)
}

// Fail ends the step with a failure marker and detail.
func (s *Spinner) Fail(detail string) {
	s.finish(s.symbols.Failure, color.FgRed, detail)
}

func (s *Spinner) finish(symbol string, attr color.Attribute, detail string) {
	if s.spin != nil {
		s.spin.Stop()
	}
	if s.caps.SupportsColor {
		symbol = color.New(attr, color.Bold).Sprint(symbol)
	}
	line := s.message
	if detail != "" {
		line += ": " + detail
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, line)
}
