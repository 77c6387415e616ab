package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Kind discriminates the failures the board engine reacts to
type Kind int

const (
	// KindTransient is a network or server hiccup. Local state is kept and
	// the user may retry.
	KindTransient Kind = iota
	// KindValidation means the command can never succeed as sent (unknown
	// ticket or status). The board must be refreshed.
	KindValidation
	// KindConflict means the command was computed from a stale board. The
	// board must be refreshed before the user tries again.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is every failure returned by the Client
type Error struct {
	Kind    Kind
	Op      string // "fetch" or "reorder"
	Status  int    // HTTP status, 0 when no response arrived
	Code    string // server error code, e.g. "not_found"
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports whether the server said the primary ticket is gone
func (e *Error) NotFound() bool {
	return e.Code == "not_found"
}

// KindOf returns the kind of err. Errors that did not come from the gateway
// are transient.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindTransient
}

// IsTransient reports whether err is retryable
func IsTransient(err error) bool {
	return err != nil && KindOf(err) == KindTransient
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsConflict reports whether err is a stale-board conflict
func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}

// IsNotFound reports whether the server said the ticket does not exist
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.NotFound()
}

// NewTransient wraps a low level failure
func NewTransient(op string, err error) *Error {
	return classifyTransport(op, err)
}

// classifyTransport maps dial and I/O failures to a transient Error with a
// hint for the common cases.
func classifyTransport(op string, err error) *Error {
	e := &Error{Kind: KindTransient, Op: op, Err: err, Message: err.Error()}

	var errno syscall.Errno
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		e.Message = "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		e.Message = "request timed out"
	case errors.Is(err, os.ErrNotExist):
		e.Message = "server socket not found"
		e.Hint = "Start the server: deskboard serve"
	case errors.Is(err, os.ErrPermission):
		e.Message = "permission denied"
		e.Hint = "Check ~/.deskboard/ permissions: chmod 700 ~/.deskboard/"
	case errors.As(err, &errno) && errno == syscall.ECONNREFUSED:
		e.Message = "connection refused"
		e.Hint = "Server may have crashed. Restart: deskboard serve"
	case errors.As(err, &netErr) && netErr.Timeout():
		e.Message = "request timed out"
	}
	return e
}

// classifyStatus maps an HTTP error response to an Error
func classifyStatus(op string, status int, code, message string) *Error {
	e := &Error{Op: op, Status: status, Code: code, Message: message}
	if e.Message == "" {
		e.Message = fmt.Sprintf("server returned %d", status)
	}
	switch {
	case status == 409:
		e.Kind = KindConflict
	case status >= 400 && status < 500 && status != 408 && status != 429:
		e.Kind = KindValidation
	default:
		e.Kind = KindTransient
	}
	return e
}
