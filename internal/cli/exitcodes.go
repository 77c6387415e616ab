package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/deskboard/internal/gateway"
	"github.com/thenoetrevino/deskboard/internal/services/ticket"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: server unreachable, timeouts, unexpected failures.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing arguments, an index that is not a number.
	ExitUsage = 2

	// ExitNotFound indicates a requested ticket was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: a config file that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: unknown status, a reorder the server refused as invalid.
	ExitValidation = 5

	// ExitConflict indicates the board changed underneath the command.
	// Use for: a reorder rejected because a column version moved on.
	ExitConflict = 6
)

// ExitError carries the process exit code a failed command should end with
type ExitError struct {
	Code int
	Err  error

	// Reported is set once the error has been printed for the user
	Reported bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit wraps err with an exit code
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// Exitf is Exit with a formatted message
func Exitf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode picks the exit code for err: an explicit ExitError wins, then the
// gateway error kind, then ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		switch {
		case gwErr.NotFound():
			return ExitNotFound
		case gwErr.Kind == gateway.KindValidation:
			return ExitValidation
		case gwErr.Kind == gateway.KindConflict:
			return ExitConflict
		}
	}
	if ticket.IsValidation(err) {
		return ExitValidation
	}
	return ExitFailure
}

// ErrorCode is the machine-readable code printed with a failure
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "TICKET_NOT_FOUND"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitConflict:
		return "CONFLICT"
	default:
		return "ERROR"
	}
}
