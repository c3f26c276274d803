package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/httperr/handler"
	"github.com/dmitrymomot/httperr/pkg/environment"
	"github.com/dmitrymomot/httperr/pkg/i18n"
	"github.com/dmitrymomot/httperr/pkg/logger"
)

func newEngine(cfg handler.Config, opts ...handler.Option) *handler.Engine {
	return handler.NewEngine(cfg, append([]handler.Option{handler.WithLogger(logger.Discard())}, opts...)...)
}

func jsonRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Accept", "application/json")
	return req
}

func TestNormalize_Nil(t *testing.T) {
	t.Parallel()

	e := newEngine(handler.Config{})
	assert.Nil(t, e.Normalize(jsonRequest(), nil))
}

func TestNormalize_NotAcceptable(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "image/png")

	rec := newEngine(handler.Config{}).Normalize(req, errors.New("404"))
	assert.Equal(t, http.StatusNotAcceptable, rec.Status)
	assert.Equal(t, "Not Acceptable", rec.Message)
	assert.Equal(t, handler.FormatNone, rec.Format)
}

func TestNormalize_Families(t *testing.T) {
	t.Parallel()

	_, numErr := strconv.Atoi("abc")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bare status", errors.New("418"), http.StatusTeapot, "I'm a teapot"},
		{"redis", replyErr("READONLY"), http.StatusRequestTimeout, "Client Timeout"},
		{"credentials", handler.ErrIncorrectPassword, http.StatusBadRequest, "Password or username is incorrect"},
		{"locked account", handler.ErrTooManyAttempts, http.StatusTooManyRequests, "Account locked due to too many failed login attempts"},
		{"oauth slow down", &oauth2.RetrieveError{ErrorCode: "slow_down", ErrorDescription: "Slow down"}, http.StatusTooManyRequests, "Slow down"},
		{"oauth grant", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}, http.StatusBadRequest, "Authentication failed"},
		{"data layer", fmt.Errorf("query: %w", errors.Join(errors.New("pool"), sql.ErrConnDone)), http.StatusRequestTimeout, "Client Timeout"},
		{"code bug in development keeps message", numErr, http.StatusInternalServerError, numErr.Error()},
		{"http error", handler.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"custom http error", handler.NewHTTPError(http.StatusConflict, "Email already taken"), http.StatusConflict, "Email already taken"},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", Name: "db.internal", IsTimeout: true}, http.StatusRequestTimeout, "Client Timeout"},
		{"dns not found", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, http.StatusMisdirectedRequest, "Client Timeout"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
	}

	e := newEngine(handler.Config{Environment: "development"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := e.Normalize(jsonRequest(), tt.err)
			require.NotNil(t, rec)
			assert.Equal(t, tt.status, rec.Status)
			assert.Equal(t, tt.message, rec.Message)
			assert.False(t, rec.IsCodeBug)
			assert.NotEmpty(t, rec.ID)
		})
	}
}

func TestNormalize_CodeBugHardened(t *testing.T) {
	t.Parallel()

	var syntaxErr *json.SyntaxError
	err := json.Unmarshal([]byte("{"), &struct{}{})
	require.ErrorAs(t, err, &syntaxErr)

	e := newEngine(handler.Config{Environment: "production"})
	rec := e.Normalize(jsonRequest(), fmt.Errorf("decode body: %w", err))
	assert.True(t, rec.IsCodeBug)
	assert.Equal(t, http.StatusInternalServerError, rec.Status)
	assert.Equal(t, "Internal Server Error", rec.Message)
	assert.Equal(t, handler.CategoryCodeBug, rec.Category)
}

func TestNormalize_CodeBugFromContextEnvironment(t *testing.T) {
	t.Parallel()

	req := jsonRequest()
	req = req.WithContext(environment.WithContext(req.Context(), environment.Staging))

	rec := newEngine(handler.Config{}).Normalize(req, &handler.PanicError{Value: 42.5})
	assert.True(t, rec.IsCodeBug)
	assert.Equal(t, "Internal Server Error", rec.Message)
}

func TestNormalize_CodeBugWithStatusInDevelopment(t *testing.T) {
	t.Parallel()

	_, numErr := strconv.Atoi("x")
	err := handler.ErrBadRequest.Wrap(numErr)

	rec := newEngine(handler.Config{}).Normalize(jsonRequest(), err)
	assert.Equal(t, http.StatusBadRequest, rec.Status)
	assert.Equal(t, "Bad Request", rec.Message)
}

func TestNormalize_Headers(t *testing.T) {
	t.Parallel()

	e := newEngine(handler.Config{})
	challenge := handler.ErrUnauthorized.WithHeader("WWW-Authenticate", `Basic realm="x"`)

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		rec := e.Normalize(jsonRequest(), fmt.Errorf("guard: %w", challenge))
		assert.Equal(t, http.StatusUnauthorized, rec.Status)
		assert.Equal(t, `Basic realm="x"`, rec.Headers.Get("WWW-Authenticate"))
		assert.Empty(t, handler.ErrUnauthorized.Headers)
	})

	t.Run("joined", func(t *testing.T) {
		t.Parallel()
		rec := e.Normalize(jsonRequest(), errors.Join(errors.New("bad password"), challenge))
		assert.Equal(t, http.StatusUnauthorized, rec.Status)
		assert.Equal(t, `Basic realm="x"`, rec.Headers.Get("WWW-Authenticate"))
	})

	t.Run("several wrapped errors", func(t *testing.T) {
		t.Parallel()
		retry := handler.ErrTooManyRequests.WithHeader("Retry-After", "30")
		rec := e.Normalize(jsonRequest(), fmt.Errorf("%w and %w", retry, challenge.WithHeader("Retry-After", "99")))
		assert.Equal(t, "30", rec.Headers.Get("Retry-After"))
		assert.Equal(t, `Basic realm="x"`, rec.Headers.Get("WWW-Authenticate"))
	})

	t.Run("pointer", func(t *testing.T) {
		t.Parallel()
		rec := e.Normalize(jsonRequest(), fmt.Errorf("guard: %w", &challenge))
		assert.Equal(t, http.StatusUnauthorized, rec.Status)
		assert.Equal(t, `Basic realm="x"`, rec.Headers.Get("WWW-Authenticate"))
	})
}

func TestNormalize_Validation(t *testing.T) {
	t.Parallel()

	e := newEngine(handler.Config{})

	t.Run("single field", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError().AddKind("firstName", handler.KindRequired)
		rec := e.Normalize(jsonRequest(), err)
		assert.Equal(t, http.StatusBadRequest, rec.Status)
		assert.Equal(t, "First name is required", rec.Message)
	})

	t.Run("status is always 400", func(t *testing.T) {
		t.Parallel()
		err := handler.ErrConflict.Wrap(handler.NewValidationError().Add("", "must accept the terms"))
		rec := e.Normalize(jsonRequest(), err)
		assert.Equal(t, http.StatusBadRequest, rec.Status)
		assert.Equal(t, "Must accept the terms", rec.Message)
	})

	t.Run("several fields for a browser", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError().
			AddKind("email", handler.KindRequired).
			Add("name", "name is required")
		rec := e.Normalize(jsonRequest(), err)
		assert.Equal(t, `<ul class="text-left mb-0"><li>Email is required</li><li>Name is required</li></ul>`, rec.Message)
	})

	t.Run("several fields for an API client", func(t *testing.T) {
		t.Parallel()
		req := jsonRequest()
		req = req.WithContext(handler.WithAPI(req.Context()))
		err := handler.NewValidationError().
			AddKind("email", handler.KindRequired).
			AddKind("name", handler.KindRequired)
		rec := e.Normalize(req, err)
		assert.Equal(t, "* Email is required\n* Name is required", rec.Message)
	})
}

func TestNormalize_Translation(t *testing.T) {
	t.Parallel()

	tr, err := i18n.New(i18n.Catalog{
		"en": {},
		"de": {
			"Not Found":              "Nicht gefunden",
			"Client Timeout":         "Zeitüberschreitung",
			"First name is required": "Vorname ist erforderlich",
		},
	}, i18n.WithDefaultLanguage("en"))
	require.NoError(t, err)

	e := newEngine(handler.Config{}, handler.WithTranslator(tr))
	german := func() *http.Request {
		req := jsonRequest()
		return req.WithContext(i18n.SetLocale(req.Context(), "de"))
	}

	assert.Equal(t, "Nicht gefunden", e.Normalize(german(), errors.New("404")).Message)
	assert.Equal(t, "Zeitüberschreitung", e.Normalize(german(), replyErr("LOADING")).Message)
	assert.Equal(t, "Vorname ist erforderlich",
		e.Normalize(german(), handler.NewValidationError().AddKind("firstName", handler.KindRequired)).Message)

	rec := e.Normalize(german(), handler.NoTranslate(handler.ErrNotFound))
	assert.True(t, rec.NoTranslate)
	assert.Equal(t, "Not Found", rec.Message)

	assert.Equal(t, "Not Found", e.Normalize(jsonRequest(), errors.New("404")).Message)
}

func TestNormalize_TranslatorFunc(t *testing.T) {
	t.Parallel()

	upper := handler.TranslatorFunc(func(context.Context) func(string) string {
		return func(s string) string { return "[" + s + "]" }
	})
	rec := newEngine(handler.Config{}, handler.WithTranslator(upper)).Normalize(jsonRequest(), handler.ErrNotFound)
	assert.Equal(t, "[Not Found]", rec.Message)
}
