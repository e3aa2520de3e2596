// Package apperrors defines the error taxonomy shared by the service layer
// and the HTTP handlers. Every service operation either succeeds completely
// or returns exactly one *Error; handlers map it to a status code with StatusOf.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindUpstream
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a bad or missing field shape.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent post, reply or user. The original API surfaces
// these as 400, not 404, and clients depend on that.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate state change, e.g. voting twice in the same direction.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a document store or external API failure. status is 500 for
// store failures and 502 for the song catalog.
func Upstream(status int, err error) *Error {
	msg := "Internal Server Error"
	if status == http.StatusBadGateway {
		msg = "The server was acting as a gateway or proxy and received an invalid response from the upstream server"
	}
	return &Error{Kind: KindUpstream, Status: status, Message: msg, Err: err}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for untyped errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err without wrapped detail.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal Server Error"
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
