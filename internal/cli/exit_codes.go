package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the crewlint CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates that linting found problems
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or missing files
	ExitInvalidArguments = 3

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 4
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitValidationFailed
}
