package handler

import (
	"errors"
	"net/http"
)

// HandlerFunc handles a request and returns a Response. Failures are
// returned as Fail(err) and rendered by the configured ErrorHandler.
//
//	func showInvoice(ctx handler.Context) handler.Response {
//		inv, err := invoices.Get(ctx, chi.URLParam(ctx.Request(), "id"))
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(inv)
//	}
type HandlerFunc[C Context] func(ctx C) Response

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ErrorHandler handles errors returned while producing or rendering a response.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc to add cross-cutting functionality.
// Decorators are applied in order, with the first decorator in the list
// being the outermost wrapper.
type Decorator[C Context] func(HandlerFunc[C]) HandlerFunc[C]

// WrapOption configures the Wrap function.
type WrapOption[C Context] func(*wrapConfig[C])

type wrapConfig[C Context] struct {
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C]
}

// WithErrorHandler sets a custom error handler, usually Engine.Handle.
func WithErrorHandler[C Context](h ErrorHandler[C]) WrapOption[C] {
	return func(c *wrapConfig[C]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithContextFactory sets a custom context factory. The factory should pass
// the writer through TrackWriter so the error handler can see earlier writes.
func WithContextFactory[C Context](f func(http.ResponseWriter, *http.Request) C) WrapOption[C] {
	return func(c *wrapConfig[C]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

// WithDecorators adds decorators to wrap the handler.
// Decorators are applied in order, with the first decorator being the outermost.
func WithDecorators[C Context](decorators ...Decorator[C]) WrapOption[C] {
	return func(c *wrapConfig[C]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// defaultErrorHandler writes a bare text response unless the response has
// already started.
func defaultErrorHandler[C Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if headersSent(w) {
		return
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		for k, vs := range httpErr.Headers {
			w.Header()[k] = vs
		}
		http.Error(w, httpErr.Error(), httpErr.Code)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Wrap converts a HandlerFunc to http.HandlerFunc. Panics in the handler or
// the response are recovered and passed to the error handler as errors.
//
//	engine := handler.NewEngine(cfg, handler.WithLogger(log))
//	r.Get("/invoices/{id}", handler.Wrap(showInvoice,
//		handler.WithErrorHandler(engine.Handle),
//		handler.WithDecorators(handler.BasicAuth[handler.Context]("Admin", creds)),
//	))
func Wrap[C Context](h HandlerFunc[C], opts ...WrapOption[C]) http.HandlerFunc {
	cfg := &wrapConfig[C]{
		errorHandler: defaultErrorHandler[C],
		contextFactory: func(w http.ResponseWriter, r *http.Request) C {
			ctx := NewContext(w, r)
			if c, ok := any(ctx).(C); ok {
				return c
			}
			panic("cannot use default context factory with custom context type - provide WithContextFactory")
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	finalHandler := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		finalHandler = cfg.decorators[i](finalHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := cfg.contextFactory(w, r)

		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			cfg.errorHandler(ctx, recovered(v))
		}()

		response := finalHandler(ctx)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
