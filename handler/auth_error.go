package handler

import (
	"errors"
	"net/http"

	"golang.org/x/oauth2"
)

// AuthError is a credential failure reported to the user as a client error.
// Throttled failures become 429 Too Many Requests, the rest 400.
type AuthError struct {
	Name      string
	Message   string
	Throttled bool
}

func (e *AuthError) Error() string { return e.Message }

// Login and registration failures. Compare with errors.Is.
var (
	ErrAuthentication    = &AuthError{Name: "AuthenticationError", Message: "Authentication failed"}
	ErrMissingPassword   = &AuthError{Name: "MissingPasswordError", Message: "No password was given"}
	ErrAttemptTooSoon    = &AuthError{Name: "AttemptTooSoonError", Message: "Account is currently locked. Try again later", Throttled: true}
	ErrTooManyAttempts   = &AuthError{Name: "TooManyAttemptsError", Message: "Account locked due to too many failed login attempts", Throttled: true}
	ErrNoSaltValueStored = &AuthError{Name: "NoSaltValueStoredError", Message: "Authentication not possible. No salt value stored"}
	ErrIncorrectPassword = &AuthError{Name: "IncorrectPasswordError", Message: "Password or username is incorrect"}
	ErrIncorrectUsername = &AuthError{Name: "IncorrectUsernameError", Message: "Password or username is incorrect"}
	ErrMissingUsername   = &AuthError{Name: "MissingUsernameError", Message: "No username was given"}
	ErrUserExists        = &AuthError{Name: "UserExistsError", Message: "A user with the given username is already registered"}
)

// authStatus maps credential-library errors to a status and message.
func authStatus(err error) (status int, message string, ok bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		if authErr.Throttled {
			return http.StatusTooManyRequests, authErr.Message, true
		}
		return http.StatusBadRequest, authErr.Message, true
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status = http.StatusBadRequest
		if retrieveErr.ErrorCode == "slow_down" ||
			(retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusTooManyRequests) {
			status = http.StatusTooManyRequests
		}
		message = retrieveErr.ErrorDescription
		if message == "" {
			message = ErrAuthentication.Message
		}
		return status, message, true
	}

	return 0, "", false
}
