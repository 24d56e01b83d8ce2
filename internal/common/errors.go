package common

import (
	"errors"
	"net/http"
)

// Error codes rendered in API error bodies.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeInternal     = "INTERNAL"
	CodeRateLimited  = "RATE_LIMITED"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// InvalidInput wraps err as a 400 INVALID_INPUT error.
func InvalidInput(message string, err error) *AppError {
	return NewAppError(CodeInvalidInput, message, http.StatusBadRequest, err)
}

// AsAppError extracts the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var target *AppError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
