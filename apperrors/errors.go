package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the application error carried from stores and controllers out to
// the HTTP boundary.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a 404 Error with the given message
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// InvalidInput creates a 400 Error with the given message
func InvalidInput(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Common error values. Stores return ErrNotFound when a lookup matches
// nothing; controllers translate it into a resource-specific message.
var (
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrInvalidInput   = New(http.StatusBadRequest, "Invalid input", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// HandleError writes err as a JSON response. Anything that is not an *Error is
// reported as an internal failure so store internals never leak to the client.
func HandleError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = New(http.StatusInternalServerError, "Internal server error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(appErr)
}
