// Package apperr defines the error kinds that cross the HTTP boundary.
// Services return *Error values; handlers turn them into a status code and
// the {errors:[{message}]} envelope.
package apperr

import (
	"errors"
	"net/http"
)

// Kinds.  Compare with errors.Is.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInternal         = errors.New("internal error")
)

// Error carries a kind, the user-visible message and an optional cause.
// The cause is logged, never rendered.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports kind equality so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) *Error   { return &Error{Kind: ErrBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: ErrConflict, Message: msg} }

// Internal wraps a store or infrastructure failure.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: msg, Err: cause}
}

// Status maps an error to its HTTP status.  Unauthorized maps to 403, the
// status clients of this API have always received for a rejected session.
// Anything that is not an *Error is an internal failure.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible text of err.  Internal failures never
// leak their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrInternal {
		return e.Message
	}
	return "Internal server error"
}
