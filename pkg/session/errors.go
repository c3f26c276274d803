package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.not_found")
	ErrSessionExpired  = errors.New("session.expired")
	ErrInvalidSession  = errors.New("session.invalid")
	ErrNoSession       = errors.New("session.not_in_context")
	ErrHeadersSent     = errors.New("session.headers_already_sent")
)
