package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("cookie: at least one secret is required")
	ErrSecretTooShort   = errors.New("cookie: secret too short")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
	ErrInvalidSignature = errors.New("cookie: invalid signature")
)
