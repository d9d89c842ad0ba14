package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
)

// Exit codes for the statusboard CLI
// These codes let scripts and CI tell failures apart
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (server error, write error)
	ExitFailure = 1

	// ExitCheckFailed indicates content that failed to parse or a failed check
	ExitCheckFailed = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates an invalid or unreadable project config
	ExitConfigError = 4
)

// ExitError carries an exit code for output that was already printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that exits with code without further output.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigError
		case clierrors.Content:
			return ExitCheckFailed
		}
	}
	return ExitFailure
}
