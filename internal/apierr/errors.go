// Package apierr defines the typed errors shared by repositories and the
// request managers. Every domain failure carries the HTTP status code it
// should surface as, plus a client-safe message.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain failure with a transport status code attached.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func MethodNotAllowed(method string) *Error {
	return &Error{Code: http.StatusMethodNotAllowed, Message: fmt.Sprintf("Method '%s' not allowed", method)}
}

// Internal hides the underlying cause; backend errors must not leak to clients.
func Internal() *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "internal server error"}
}

// From extracts an *Error from err, or wraps it as a generic 500.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal()
}

func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

func IsBadRequest(err error) bool {
	return hasCode(err, http.StatusBadRequest)
}

func hasCode(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
