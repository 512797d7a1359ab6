package webutil

import (
	"errors"
	"net/http"
)

const (
	msgBadRequest     = "Bad Request"
	msgMissingFields  = "Missing required fields"
	msgInternalServer = "Internal server error"
	msgUnauthorized   = "Unauthorized"
)

// Represents an error with an associated HTTP status code
// and a user-facing message.
type HTTPError struct {
	cause    error    // The underlying error, can be nil
	Code     int      // HTTP status code
	Message  string   // User-facing error message
	Required []string // Required field names, sent with 400 validation errors
}

// Implements the error interface.
// It returns the Message, which is intended for the HTTP response.
func (he HTTPError) Error() string {
	return he.Message
}

// Provides compatibility for errors.Is and errors.As.
func (he HTTPError) Unwrap() error {
	return he.cause
}

// Returns the defaultVal if the initial message is empty.
func defaultMessageIfEmpty(initialMsg, defaultVal string) string {
	if initialMsg == "" {
		return defaultVal
	}
	return initialMsg
}

// Creates a new HTTPError with a code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		cause:   errors.New(message),
		Code:    code,
		Message: message,
	}
}

// Creates a new HTTPError that wraps an existing error (cause).
// Only the message is sent to the client; the cause is logged.
func NewHTTPErrorWrap(code int, message string, cause error) *HTTPError {
	return &HTTPError{
		cause:   cause,
		Code:    code,
		Message: message,
	}
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, defaultMessageIfEmpty(message, msgBadRequest))
}

// ErrMissingFields is a 400 whose body also lists the required field names.
func ErrMissingFields(message string, required []string, cause error) *HTTPError {
	return &HTTPError{
		cause:    cause,
		Code:     http.StatusBadRequest,
		Message:  defaultMessageIfEmpty(message, msgMissingFields),
		Required: required,
	}
}

func ErrInternalServer(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, defaultMessageIfEmpty(message, msgInternalServer))
}

func ErrUnauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, defaultMessageIfEmpty(message, msgUnauthorized))
}
