// Package apperrors defines the error taxonomy shared by services and handlers.
// Every error that reaches the HTTP boundary is mapped to a status code and a
// client-safe message through Status and Message.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInternal     = errors.New("internal error")
)

// internalMessage is what clients see for anything unclassified.
const internalMessage = "Internal server error"

// Error pairs a taxonomy kind with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Is lets errors.Is match the taxonomy kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New returns an *Error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an *Error of the given kind that keeps cause for logging.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Validation, Conflict, ... are shorthands for New with the matching kind.
func Validation(message string) *Error   { return New(ErrValidation, message) }
func Conflict(message string) *Error     { return New(ErrConflict, message) }
func Unauthorized(message string) *Error { return New(ErrUnauthorized, message) }
func Forbidden(message string) *Error    { return New(ErrForbidden, message) }
func NotFound(message string) *Error     { return New(ErrNotFound, message) }
func Expired(message string) *Error      { return New(ErrExpired, message) }

// Internal wraps an unexpected failure. The cause is never shown to clients.
func Internal(cause error) *Error {
	return Wrap(ErrInternal, internalMessage, cause)
}

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Causes are never
// included; errors outside the taxonomy get a generic message.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return internalMessage
}
