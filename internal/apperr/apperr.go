// Package apperr defines the error taxonomy shared by the service and API layers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure
type Kind string

const (
	Validation   Kind = "validation"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	Conflict     Kind = "conflict"
	Internal     Kind = "internal"
)

// Error is a classified failure with a caller-facing message
type Error struct {
	Kind    Kind
	Message string
	Field   string // Field that caused the error, for validation errors
	Cause   error  // Underlying cause, never shown to callers
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error of the given kind that keeps cause for logging
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NewValidation(field, message string) *Error {
	return &Error{Kind: Validation, Message: message, Field: field}
}

func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message)
}

func NewConflict(message string) *Error {
	return New(Conflict, message)
}

func NewInternal(message string, cause error) *Error {
	return Wrap(Internal, message, cause)
}

// KindOf returns the kind of err, Internal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err is classified as kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to its HTTP status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show a client. Internal failures are not described.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == Internal {
		return "Internal server error"
	}
	return appErr.Message
}
