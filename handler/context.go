package handler

import (
	"context"
	"net/http"
	"time"
)

// Context wraps http.Request and http.ResponseWriter with context.Context.
// It embeds the request's context and provides access to HTTP components.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext creates a new Context from HTTP request and response writer.
// The writer is tracked so error rendering can tell whether the response
// has already started.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: TrackWriter(w), r: r}
}

type httpContext struct {
	w *ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} { return c.r.Context().Done() }
func (c *httpContext) Err() error            { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any     { return c.r.Context().Value(key) }

// ContextKey provides type-safe context keys to prevent key collisions.
// Should be created as package-level variables for consistent access.
type ContextKey struct{ name string }

func (c *ContextKey) String() string {
	return c.name
}

// NewContextKey creates a new context key.
//
//	var userKey = handler.NewContextKey("user")
func NewContextKey(name string) *ContextKey {
	return &ContextKey{name}
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not present or has a different type.
func ContextValue[T any](ctx context.Context, key any) T {
	val, _ := ctx.Value(key).(T)
	return val
}

// ContextValueOK is ContextValue that also reports whether the key was
// present with the expected type.
func ContextValueOK[T any](ctx context.Context, key any) (T, bool) {
	val, ok := ctx.Value(key).(T)
	return val, ok
}

var apiKey = NewContextKey("api")

// WithAPI flags the request as coming from a machine client. API clients get
// HTML stripped from error messages.
func WithAPI(ctx context.Context) context.Context {
	return context.WithValue(ctx, apiKey, true)
}

// IsAPI reports whether the context carries the API client flag.
func IsAPI(ctx context.Context) bool {
	return ContextValue[bool](ctx, apiKey)
}

// MarkAPI is a middleware that flags every request it sees as an API request.
func MarkAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithAPI(r.Context())))
	})
}
