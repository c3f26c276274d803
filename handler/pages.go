package handler

import (
	"context"
	_ "embed"
	"io"

	"github.com/a-h/templ"
)

// Built-in pages used when no renderer is configured or it fails.
//
//go:embed pages/404.html
var fallback404 []byte

//go:embed pages/500.html
var fallback500 []byte

// Page names passed to a PageRenderer.
const (
	PageNotFound    = "404"
	PageServerError = "500"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Title       string
	Description string
	StatusCode  int
	RequestID   string
	ErrorID     string
	RetryURL    string
}

// ErrorToastParams contains data for rendering error toasts
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
	ErrorID   string
}

// PageRenderer renders a named error page. Implementations return
// ErrPageNotFound for names they do not know.
type PageRenderer interface {
	RenderPage(ctx context.Context, w io.Writer, name string, p ErrorPageParams) error
}

// PageRendererFunc adapts a function to PageRenderer.
type PageRendererFunc func(ctx context.Context, w io.Writer, name string, p ErrorPageParams) error

func (f PageRendererFunc) RenderPage(ctx context.Context, w io.Writer, name string, p ErrorPageParams) error {
	return f(ctx, w, name, p)
}

// TemplPages maps page names to templ components.
//
//	handler.WithPages(handler.TemplPages{
//		handler.PageNotFound:    views.NotFound,
//		handler.PageServerError: views.ServerError,
//	})
type TemplPages map[string]func(ErrorPageParams) templ.Component

func (p TemplPages) RenderPage(ctx context.Context, w io.Writer, name string, params ErrorPageParams) error {
	page, ok := p[name]
	if !ok || page == nil {
		return ErrPageNotFound
	}
	return page(params).Render(ctx, w)
}

func fallbackPage(name string) []byte {
	if name == PageNotFound {
		return fallback404
	}
	return fallback500
}
