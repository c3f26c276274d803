package handler

import (
	"net/http"

	"github.com/dmitrymomot/httperr/pkg/statuses"
)

// HTTPError carries an explicit status. Key is the user-facing message and
// doubles as the translation key.
type HTTPError struct {
	Code    int
	Key     string
	Headers http.Header
	Err     error
}

func (e HTTPError) Error() string {
	if e.Key != "" {
		return e.Key
	}
	return statuses.Message(e.Code)
}

func (e HTTPError) Unwrap() error { return e.Err }

// StatusCode exposes the status to the normalizer.
func (e HTTPError) StatusCode() int { return e.Code }

// WithHeader returns a copy of e that sets an extra response header.
func (e HTTPError) WithHeader(key, value string) HTTPError {
	h := e.Headers.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set(key, value)
	e.Headers = h
	return e
}

// Wrap returns a copy of e with err as its cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

// NewHTTPError creates an error with a custom message.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// Status creates an error carrying the canonical reason phrase for code.
func Status(code int) HTTPError {
	return HTTPError{Code: code, Key: statuses.Message(code)}
}

var (
	ErrBadRequest         = Status(http.StatusBadRequest)
	ErrUnauthorized       = Status(http.StatusUnauthorized)
	ErrForbidden          = Status(http.StatusForbidden)
	ErrNotFound           = Status(http.StatusNotFound)
	ErrMethodNotAllowed   = Status(http.StatusMethodNotAllowed)
	ErrConflict           = Status(http.StatusConflict)
	ErrTooManyRequests    = Status(http.StatusTooManyRequests)
	ErrInternal           = Status(http.StatusInternalServerError)
	ErrServiceUnavailable = Status(http.StatusServiceUnavailable)
)
