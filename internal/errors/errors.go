package errors

import (
	"errors"
	"fmt"
)

// Exit codes for devtriage
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitConfigError   = 2
	ExitCaptureFailed = 3
	ExitCommandFailed = 4
	ExitValidation    = 5
)

// TriageError is the base error type for devtriage
type TriageError struct {
	Code    int
	Message string
	Cause   error

	// Silent errors only carry an exit code; the user has already seen
	// what happened.
	Silent bool
}

func (e *TriageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TriageError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *TriageError) ExitCode() int {
	return e.Code
}

// New creates a new TriageError
func New(code int, message string) *TriageError {
	return &TriageError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TriageError
func Wrap(code int, message string, cause error) *TriageError {
	return &TriageError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *TriageError {
	return Wrap(ExitConfigError, message, cause)
}

// CaptureFailed returns an error when output could not be recorded
func CaptureFailed(op string, cause error) *TriageError {
	return Wrap(ExitCaptureFailed, fmt.Sprintf("capture %s failed", op), cause)
}

// CommandNotStarted returns an error for a command that could not be launched
func CommandNotStarted(name string, cause error) *TriageError {
	return Wrap(ExitCommandFailed, fmt.Sprintf("failed to start %s", name), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *TriageError {
	return New(ExitValidation, message)
}

// CommandExit carries a child process's non-zero exit status out to main.
func CommandExit(code int) *TriageError {
	err := New(code, fmt.Sprintf("command exited with status %d", code))
	err.Silent = true
	return err
}

// IsSilent reports whether err should not be printed.
func IsSilent(err error) bool {
	var triageErr *TriageError
	return errors.As(err, &triageErr) && triageErr.Silent
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var triageErr *TriageError
	if errors.As(err, &triageErr) {
		return triageErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
