package cmd

import (
	"errors"
	"fmt"
	"io"

	"portfolio-catalog/pkg/catalog"
)

// Exit codes for CLI commands
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Check failed: findings under --strict, missing assets, drift
	ExitCommandError = 2 // The catalog or configuration could not be loaded
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// catalogError turns a catalog build failure into an exit error, listing
// every load error on w first so the colliding identifiers are visible
func catalogError(w io.Writer, err error) error {
	loadErrs := catalog.LoadErrors(err)
	if len(loadErrs) == 0 {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	for _, le := range loadErrs {
		fmt.Fprintf(w, "error: %v\n", le)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("catalog could not be built: %d error(s)", len(loadErrs)))
}
