package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/httperr/pkg/clientip"
	"github.com/dmitrymomot/httperr/pkg/environment"
	"github.com/dmitrymomot/httperr/pkg/logger"
	"github.com/dmitrymomot/httperr/pkg/requestid"
	"github.com/dmitrymomot/httperr/pkg/statuses"
)

// Config is the env-driven part of the engine setup. Collaborators are
// passed as options.
type Config struct {
	Environment      string `env:"APP_ENV" envDefault:"development"`
	BaseURL          string `env:"ERROR_HANDLER_BASE_URL"`
	Debug            bool   `env:"ERROR_HANDLER_DEBUG" envDefault:"false"`
	RedirectFallback string `env:"ERROR_HANDLER_REDIRECT_FALLBACK" envDefault:"/"`
	ToastTarget      string `env:"ERROR_HANDLER_TOAST_TARGET" envDefault:"#toast-container"`
}

// Translator returns a translation function bound to the request context.
// *i18n.Translator satisfies it.
type Translator interface {
	Func(ctx context.Context) func(string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context) func(string) string

func (f TranslatorFunc) Func(ctx context.Context) func(string) string { return f(ctx) }

// Flasher queues a one-time message for the next rendered page.
// *session.Manager satisfies it.
type Flasher interface {
	Flash(w http.ResponseWriter, r *http.Request, kind, message string) error
}

// SessionSaver persists session state before a redirect.
// *session.Manager satisfies it.
type SessionSaver interface {
	Save(w http.ResponseWriter, r *http.Request) error
}

// ErrorHook observes handled errors. It runs in its own goroutine with a
// context that outlives the request.
type ErrorHook func(ctx context.Context, rec ErrorRecord)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for error records. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTranslator translates messages with the request's locale.
func WithTranslator(t Translator) Option {
	return func(e *Engine) { e.translator = t }
}

// WithFlasher queues the error message as a flash for browser clients.
func WithFlasher(f Flasher) Option {
	return func(e *Engine) { e.flasher = f }
}

// WithSessionSaver persists the session before redirecting back.
func WithSessionSaver(s SessionSaver) Option {
	return func(e *Engine) { e.saver = s }
}

// WithPages sets the renderer for the "404" and "500" pages. Without it the
// built-in pages are served.
func WithPages(p PageRenderer) Option {
	return func(e *Engine) { e.pages = p }
}

// WithToast enables toast patches for DataStar requests.
func WithToast(toast func(ErrorToastParams) templ.Component) Option {
	return func(e *Engine) { e.toast = toast }
}

// WithToastMode sets how toasts are merged into the target (default: PatchPrepend).
func WithToastMode(mode datastar.ElementPatchMode) Option {
	return func(e *Engine) {
		if mode != "" {
			e.toastMode = mode
		}
	}
}

// WithOnError registers a hook called once per handled error.
func WithOnError(hook ErrorHook) Option {
	return func(e *Engine) { e.onError = hook }
}

// WithEnvironment overrides Config.Environment.
func WithEnvironment(env environment.Environment) Option {
	return func(e *Engine) { e.env = env }
}

// Engine turns errors into HTTP responses. It is safe for concurrent use;
// all per-request state lives in the ErrorRecord.
type Engine struct {
	cfg        Config
	env        environment.Environment
	logger     *slog.Logger
	translator Translator
	flasher    Flasher
	saver      SessionSaver
	pages      PageRenderer
	toast      func(ErrorToastParams) templ.Component
	toastMode  datastar.ElementPatchMode
	onError    ErrorHook
}

// NewEngine creates an Engine. Empty RedirectFallback and ToastTarget get
// their env defaults.
func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.RedirectFallback == "" {
		cfg.RedirectFallback = "/"
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	e := &Engine{
		cfg:       cfg,
		env:       environment.Parse(cfg.Environment),
		logger:    slog.Default(),
		toastMode: PatchPrepend,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewErrorHandler creates the default error handler for Wrap.
// Configure this once in main.go and pass to all services.
func NewErrorHandler(cfg Config, opts ...Option) ErrorHandler[Context] {
	return NewEngine(cfg, opts...).Handle
}

// Handle is an ErrorHandler. A nil error is a no-op.
func (e *Engine) Handle(ctx Context, err error) {
	e.ServeError(ctx.ResponseWriter(), ctx.Request(), err)
}

// ServeError normalizes err, renders it and reports it. Pass a tracked
// writer (see TrackWriter) for the already-sent guard to see writes made
// before the error; w is tracked here otherwise.
func (e *Engine) ServeError(w http.ResponseWriter, r *http.Request, err error) {
	w = TrackWriter(w)
	rec := e.Normalize(r, err)
	if rec == nil {
		return
	}
	e.Render(w, r, rec)
	e.report(r, rec)
}

// Middleware tracks the response writer and turns panics into error
// responses. http.ErrAbortHandler is re-raised.
func (e *Engine) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := TrackWriter(w)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			e.ServeError(tw, r, recovered(v))
		}()
		next.ServeHTTP(tw, r)
	})
}

// NotFoundHandler answers every request with a 404 rendered by the engine.
func (e *Engine) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.ServeError(TrackWriter(w), r, ErrNotFound)
	})
}

// MethodNotAllowedHandler answers every request with a 405 rendered by the engine.
func (e *Engine) MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.ServeError(TrackWriter(w), r, ErrMethodNotAllowed)
	})
}

func (e *Engine) hardened(r *http.Request) bool {
	if env := environment.FromContext(r.Context()); env != "" {
		return env.IsHardened()
	}
	return e.env.IsHardened()
}

// translateFunc returns the translation for this record, or identity.
func (e *Engine) translateFunc(r *http.Request, rec *ErrorRecord) func(string) string {
	if rec.NoTranslate || e.translator == nil {
		return func(s string) string { return s }
	}
	t := e.translator.Func(r.Context())
	if t == nil {
		return func(s string) string { return s }
	}
	return t
}

func clientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.FromRequest(r)
}

func (e *Engine) report(r *http.Request, rec *ErrorRecord) {
	ctx := r.Context()
	level := slog.LevelError
	if statuses.IsClientError(rec.Status) {
		level = slog.LevelWarn
	}

	e.logger.LogAttrs(ctx, level, "request error",
		logger.RequestID(requestid.FromContext(ctx)),
		logger.ErrorID(rec.ID),
		logger.Error(rec.Err),
		logger.Status(rec.Status),
		logger.Category(rec.Category.String()),
		logger.Request(r.Method, r.URL.Path),
		slog.String("client_ip", clientIP(r)),
		slog.String("format", string(rec.Format)),
		slog.Bool("header_sent", rec.HeaderSent),
		slog.Bool("code_bug", rec.IsCodeBug),
		logger.Component("error_handler"),
	)

	if e.onError == nil {
		return
	}
	snapshot := *rec
	snapshot.Headers = rec.Headers.Clone()
	hookCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				e.logger.ErrorContext(hookCtx, "error hook panicked",
					slog.Any("panic", v),
					logger.ErrorID(snapshot.ID),
					logger.Component("error_handler"),
				)
			}
		}()
		e.onError(hookCtx, snapshot)
	}()
}
