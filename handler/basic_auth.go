package handler

import (
	"crypto/subtle"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Credentials checks a username and password pair.
type Credentials interface {
	Verify(username, password string) bool
}

// StaticCredentials is a single plaintext pair, compared in constant time.
type StaticCredentials struct {
	Username string
	Password string
}

func (c StaticCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// BcryptCredentials maps usernames to bcrypt password hashes.
type BcryptCredentials map[string][]byte

func (c BcryptCredentials) Verify(username, password string) bool {
	hash, ok := c[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// BasicAuth rejects requests without valid basic-auth credentials with a 401
// carrying a WWW-Authenticate challenge for realm.
func BasicAuth[C Context](realm string, creds Credentials) Decorator[C] {
	challenge := ErrUnauthorized.WithHeader("WWW-Authenticate", "Basic realm="+strconv.Quote(realm))
	return func(next HandlerFunc[C]) HandlerFunc[C] {
		return func(ctx C) Response {
			username, password, ok := ctx.Request().BasicAuth()
			if !ok || creds == nil || !creds.Verify(username, password) {
				return Fail(challenge)
			}
			return next(ctx)
		}
	}
}
