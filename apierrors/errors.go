package apierrors

import (
	"errors"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

// Öffentliche Fehlermeldungen. Interne Details landen nur im Log.
const (
	MsgProductNameRequired = "Product name is required"
	MsgRateLimitExceeded   = "Rate limit exceeded"
	MsgInternal            = "An error occurred processing your request"
)

// APIError ist ein Fehler mit Typ und einer Meldung, die an den Client gehen darf.
type APIError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Error constructors
func NewInvalidInput(message string) *APIError {
	return &APIError{Type: ErrorTypeInvalidInput, Message: message}
}

func NewRateLimited() *APIError {
	return &APIError{Type: ErrorTypeRateLimited, Message: MsgRateLimitExceeded}
}

func NewInternal(err error) *APIError {
	return &APIError{Type: ErrorTypeInternal, Message: MsgInternal, Cause: err}
}

// Classify ordnet einen beliebigen Fehler einem HTTP-Status und einer öffentlichen Meldung zu.
// Alles, was kein bekannter APIError ist, wird zu einem generischen 500er.
func Classify(err error) (status int, message string) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, MsgInternal
	}
	switch apiErr.Type {
	case ErrorTypeInvalidInput:
		return http.StatusBadRequest, apiErr.Message
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests, MsgRateLimitExceeded
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// IsInvalidInput meldet, ob err (oder ein umhüllter Fehler) ein InvalidInput-Fehler ist.
func IsInvalidInput(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeInvalidInput
}
