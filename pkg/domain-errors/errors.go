// Package domainerrors provides coded errors for the service layer.
//
// Services return these so transports can translate them into protocol
// responses without inspecting error strings. Stores return sentinel errors
// (pkg/platform/sentinel); services wrap them here with the appropriate code.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport translation and retry policy.
type Code string

const (
	// Client-facing, terminal - never retried automatically.
	CodeBadRequest        Code = "bad_request"
	CodeValidation        Code = "validation_error"
	CodeInvalidInput      Code = "invalid_input"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeInvalidTransition Code = "invalid_transition"

	// Retryable - the caller may refresh state and resubmit the operation.
	CodeConflict Code = "conflict"
	CodeTimeout  Code = "timeout"

	// Internal facts - invariant breaches and infrastructure failures.
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is work against freshly constructed coded errors:
// two Errors match when code and message are equal.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// New creates a coded error with a message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a code and message. The cause
// remains reachable through errors.Unwrap for logging and tests.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call-site readability in handlers.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal for
// un-coded errors so unexpected failures never leak detail to clients.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-facing message from err. Internal errors
// return an empty message; their detail belongs in logs only.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) && coded.Code != CodeInternal {
		return coded.Message
	}
	return ""
}
