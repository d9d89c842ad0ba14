// Package logging builds the component loggers of the dashboard on zerolog.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar selects the console format when set to "dev".
const EnvVar = "STATUSBOARD_ENV"

// Logger is the logging surface used across packages.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Infow(msg string, fields map[string]any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Infow(string, map[string]any)  {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// Options configures the root logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File routes output through a rotating log file when set.
	File string
	// Out is the destination when File is empty. Defaults to stderr.
	Out io.Writer
	// Console forces the human readable format.
	Console bool
}

// Root owns the log output and hands out component loggers.
type Root struct {
	base   zerolog.Logger
	closer io.Closer
}

// New builds the root logger. The console format is used when Console is set,
// when STATUSBOARD_ENV=dev, or when writing to a terminal.
func New(opts Options) *Root {
	var out io.Writer
	var closer io.Closer

	switch {
	case opts.File != "":
		_ = os.MkdirAll(filepath.Dir(opts.File), 0o755)
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		out, closer = lj, lj
	case opts.Out != nil:
		out = opts.Out
	default:
		out = os.Stderr
	}

	if opts.File == "" && (opts.Console || isDev() || isTerminal(out)) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	z := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return &Root{base: z, closer: closer}
}

// For returns a logger tagged with the component field.
func (r *Root) For(component string) *ZerologLogger {
	return &ZerologLogger{log: r.base.With().Str("component", component).Logger()}
}

// Close releases the log file, if any.
func (r *Root) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ParseLevel maps a config level name to a zerolog level. Unknown names give info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isDev() bool {
	return strings.EqualFold(os.Getenv(EnvVar), "dev")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// Zerolog exposes the underlying logger for middleware that emits its own events.
func (l *ZerologLogger) Zerolog() zerolog.Logger { return l.log }

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
