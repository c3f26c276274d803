package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrPageNotFound is returned by PageRenderer implementations without the requested page.
	ErrPageNotFound = errors.New("error page not found")
)

// Canonical messages the normalizer substitutes for raw error text.
const (
	MessageClientTimeout       = "Client Timeout"
	MessageInternalServerError = "Internal Server Error"
	MessageNotAcceptable       = "Not Acceptable"

	// MessageMasked replaces 500 messages in payloads unless debug is on.
	MessageMasked = "An internal server error occurred"
)

type noTranslateError struct{ err error }

func (e noTranslateError) Error() string     { return e.err.Error() }
func (e noTranslateError) Unwrap() error     { return e.err }
func (e noTranslateError) NoTranslate() bool { return true }

// NoTranslate marks err as already translated so its messages pass through verbatim.
func NoTranslate(err error) error {
	if err == nil {
		return nil
	}
	return noTranslateError{err: err}
}

// IsNoTranslate reports whether any error in the chain opted out of translation.
func IsNoTranslate(err error) bool {
	var nt interface{ NoTranslate() bool }
	return errors.As(err, &nt) && nt.NoTranslate()
}
