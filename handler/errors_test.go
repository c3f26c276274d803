package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httperr/handler"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")

	assert.NoError(t, handler.Coerce(nil))
	assert.Same(t, sentinel, handler.Coerce(sentinel))
	assert.EqualError(t, handler.Coerce("plain message"), "plain message")
	assert.EqualError(t, handler.Coerce(404), "404")
	assert.EqualError(t, handler.Coerce(int64(503)), "503")

	var pe *handler.PanicError
	require.ErrorAs(t, handler.Coerce([]int{1}), &pe)
	assert.Equal(t, []int{1}, pe.Value)
	assert.Equal(t, "panic: [1]", pe.Error())
}

func TestNoTranslate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, handler.NoTranslate(nil))

	err := fmt.Errorf("ctx: %w", handler.NoTranslate(handler.ErrNotFound))
	assert.True(t, handler.IsNoTranslate(err))
	assert.ErrorIs(t, err, handler.ErrNotFound)
	assert.False(t, handler.IsNoTranslate(handler.ErrNotFound))
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Not Found", handler.ErrNotFound.Error())
	assert.Equal(t, http.StatusNotFound, handler.ErrNotFound.StatusCode())
	assert.Equal(t, "Unknown", handler.HTTPError{Code: 999}.Error())

	cause := errors.New("row missing")
	err := handler.ErrNotFound.Wrap(cause)
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, handler.ErrNotFound.Unwrap())

	withHeader := handler.ErrTooManyRequests.WithHeader("Retry-After", "5")
	assert.Equal(t, "5", withHeader.Headers.Get("Retry-After"))
	assert.Nil(t, handler.ErrTooManyRequests.Headers)
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	assert.True(t, verr.IsEmpty())
	assert.Equal(t, "Validation failed", verr.Error())

	verr.AddKind("age", handler.KindMin).
		Add("email", "email is taken").
		AddKind("role", "custom")

	assert.False(t, verr.IsEmpty())
	assert.True(t, verr.Has("email"))
	assert.False(t, verr.Has("name"))
	assert.Equal(t, "age below minimum", verr.Get("age"))
	assert.Equal(t, "Invalid role", verr.Get("role"))
	assert.Equal(t, "validation error: age: age below minimum, email: email is taken, role: Invalid role", verr.Error())
	assert.Len(t, verr.Fields(), 3)
}

func TestAuthErrorsAreComparable(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("login: %w", handler.ErrAttemptTooSoon)
	assert.ErrorIs(t, err, handler.ErrAttemptTooSoon)

	rec := newEngine(handler.Config{}).Normalize(jsonRequest(), err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Status)
	assert.Equal(t, handler.CategoryAuth, rec.Category)
}

func TestNegotiate(t *testing.T) {
	t.Parallel()

	tests := map[string]handler.Format{
		"":                                  handler.FormatText,
		"application/json":                  handler.FormatJSON,
		"text/html":                         handler.FormatHTML,
		"text/plain":                        handler.FormatText,
		"text/html;q=0.5, application/json": handler.FormatJSON,
		"image/png":                         handler.FormatNone,
	}

	for accept, want := range tests {
		t.Run(accept, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if accept != "" {
				req.Header.Set("Accept", accept)
			}
			assert.Equal(t, want, handler.Negotiate(req))
		})
	}
}

func TestAPIContext(t *testing.T) {
	t.Parallel()

	var sawAPI bool
	h := handler.MarkAPI(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		sawAPI = handler.IsAPI(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, sawAPI)
	assert.False(t, handler.IsAPI(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
