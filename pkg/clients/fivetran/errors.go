package fivetran

import (
	"errors"
	"fmt"
)

// Error represents an error response from the Fivetran Management API
type Error struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("fivetran: %s (status: %d, code: %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("fivetran: %s (status: %d)", e.Message, e.StatusCode)
}

// IsClientError returns true if the error is due to client input
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the error is due to upstream server issues
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsAuthError returns true if the upstream rejected the API credentials
func (e *Error) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound returns true if the requested resource does not exist upstream
func (e *Error) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsFivetranError checks if an error is a Fivetran API error
func IsFivetranError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFoundError checks if an error is an upstream not-found error
func IsNotFoundError(err error) bool {
	if e, ok := IsFivetranError(err); ok {
		return e.IsNotFound()
	}
	return false
}

// IsAuthError checks if an error is an upstream credential rejection
func IsAuthError(err error) bool {
	if e, ok := IsFivetranError(err); ok {
		return e.IsAuthError()
	}
	return false
}
