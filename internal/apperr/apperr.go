// Package apperr carries the error taxonomy used at the request-handler
// boundary. Every failure surfaced by a service is one of these kinds; the
// handler layer maps the kind to an HTTP status and a JSON {error: ...} body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// Unauthenticated: missing, invalid or expired credential.
	Unauthenticated Kind = iota
	// Forbidden: authenticated but lacking capability or ownership.
	Forbidden
	// NotFound: the referenced row does not exist.
	NotFound
	// InvalidState: a precondition on business state failed.
	InvalidState
	// Conflict: unique-constraint style violation (duplicate email, slug...).
	Conflict
	// Invalid: malformed input.
	Invalid
	// OperationFailed: uncategorized database or internal error.
	OperationFailed
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with the given message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The message is what callers see; err
// is kept for logs via Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to OperationFailed for
// unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return OperationFailed
}

// Message returns the caller-facing message for err. Unclassified errors get
// a generic message so internals never leak to clients.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "operation failed"
}

// Status maps an error to the HTTP status code for the response boundary.
func Status(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case InvalidState, Invalid:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
