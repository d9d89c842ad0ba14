package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		expected string
	}{
		"message only": {
			err:      NewRuntimeError("server stopped"),
			expected: "Error [Runtime Error]: server stopped\n",
		},
		"usage and remediation": {
			err: InvalidLimit(-2),
			expected: "Error [Argument Error]: --last must be zero or positive, got -2\n" +
				"\nUsage: statusboard commits --last <N>\n" +
				"\nTo fix this:\n  • Use --last 0 to show every commit\n",
		},
		"nil": {
			err:      nil,
			expected: "",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatErrorPlain(tt.err))
		})
	}
}

func TestWrap_KeepsChain(t *testing.T) {
	t.Parallel()

	err := ConfigLoadFailed("project.config.json", fs.ErrPermission)
	require.NotNil(t, err)
	assert.Equal(t, Configuration, err.Category)
	assert.Equal(t, "loading project.config.json: permission denied", err.Message)
	assert.ErrorIs(t, err, fs.ErrPermission)

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := RecordNotFound("billing", "content")
	wrapped := fmt.Errorf("changelog: %w", cliErr)

	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, cliErr, AsCLIError(wrapped))
	assert.False(t, IsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatSimpleError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatSimpleError(nil, Runtime))
	assert.Contains(t, FormatSimpleError(stderrors.New("boom"), Runtime), "boom")
	assert.Contains(t, FormatSimpleError(fmt.Errorf("wrapped: %w", MissingSlug()), Runtime), "statusboard changelog <slug>")
}

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {Argument, "Argument Error"},
		"configuration": {Configuration, "Configuration Error"},
		"content":       {Content, "Content Error"},
		"runtime":       {Runtime, "Runtime Error"},
		"unknown":       {ErrorCategory(42), "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}
