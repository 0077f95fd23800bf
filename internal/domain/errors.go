package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the service reports.
// Every error crossing the handler boundary carries exactly one kind.
type ErrorKind string

const (
	ErrorKindAuth       ErrorKind = "auth_error"
	ErrorKindValidation ErrorKind = "validation_error"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindUpstream   ErrorKind = "upstream_error"
	ErrorKindConfig     ErrorKind = "config_error"
	ErrorKindInternal   ErrorKind = "internal_error"
)

// Error is a kinded service error. Message is safe to return to callers;
// Err carries the underlying detail and is only ever logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewAuthError reports a failed or missing caller authentication
func NewAuthError(message string, err error) *Error {
	return &Error{Kind: ErrorKindAuth, Message: message, Err: err}
}

// NewValidationError reports malformed caller input
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

// NewUpstreamError reports a failed upstream platform call
func NewUpstreamError(message string, err error) *Error {
	return &Error{Kind: ErrorKindUpstream, Message: message, Err: err}
}

// NewConfigError reports missing or unusable process configuration
func NewConfigError(message string) *Error {
	return &Error{Kind: ErrorKindConfig, Message: message}
}

// NewInternalError reports an unexpected service failure
func NewInternalError(err error) *Error {
	return &Error{Kind: ErrorKindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the kind of a service error, defaulting to internal
// for anything outside the closed enumeration.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKindInternal
}

// AsError extracts a kinded service error if err carries one
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
