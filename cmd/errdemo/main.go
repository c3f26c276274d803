// Command errdemo serves a set of routes that fail in different ways so the
// error handler's output can be inspected from a browser or curl.
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/httperr/handler"
	"github.com/dmitrymomot/httperr/pkg/clientip"
	"github.com/dmitrymomot/httperr/pkg/config"
	"github.com/dmitrymomot/httperr/pkg/cookie"
	"github.com/dmitrymomot/httperr/pkg/environment"
	"github.com/dmitrymomot/httperr/pkg/httpserver"
	"github.com/dmitrymomot/httperr/pkg/i18n"
	"github.com/dmitrymomot/httperr/pkg/logger"
	"github.com/dmitrymomot/httperr/pkg/redis"
	"github.com/dmitrymomot/httperr/pkg/requestid"
	"github.com/dmitrymomot/httperr/pkg/session"
)

//go:embed locales/*.yaml
var locales embed.FS

type appConfig struct {
	Service     string `env:"SERVICE_NAME" envDefault:"errdemo"`
	UseRedis    bool   `env:"SESSION_USE_REDIS" envDefault:"false"`
	AdminUser   string `env:"DEMO_ADMIN_USER" envDefault:"admin"`
	AdminPass   string `env:"DEMO_ADMIN_PASSWORD" envDefault:"password"`
	PostgresDSN string `env:"DEMO_POSTGRES_DSN" envDefault:"postgres://demo@127.0.0.1:1/demo?connect_timeout=1"`
	MongoURI    string `env:"DEMO_MONGO_URI" envDefault:"mongodb://127.0.0.1:1"`

	Handler handler.Config
	HTTP    httpserver.Config
	Redis   redis.Config
	Cookie  cookie.Config
	Session session.Config
}

func main() {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	env := environment.Parse(cfg.Handler.Environment)
	log := logger.New(
		logger.WithEnvironment(env, cfg.Service),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)

	if err := run(context.Background(), cfg, env, log); err != nil {
		log.Error("errdemo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, env environment.Environment, log *slog.Logger) error {
	catalog, err := i18n.LoadFS(locales, "locales")
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	translator, err := i18n.New(catalog, i18n.WithDefaultLanguage("en"), i18n.WithMissingKeyLog(log))
	if err != nil {
		return fmt.Errorf("init translator: %w", err)
	}

	if len(cfg.Cookie.Secrets) == 0 && !env.IsHardened() {
		cfg.Cookie.Secrets = []string{strings.Repeat("insecure-dev-secret", 2)}
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("init cookies: %w", err)
	}

	checks := map[string]httpserver.Check{}
	var store session.Store = session.NewMemoryStore()
	if cfg.UseRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Session.RedisKey)
		checks["redis"] = redis.Healthcheck(client)
	}
	sessions := session.New(store, cookies, session.WithConfig(cfg.Session), session.WithLogger(log))

	engine := handler.NewEngine(cfg.Handler,
		handler.WithLogger(log),
		handler.WithEnvironment(env),
		handler.WithTranslator(translator),
		handler.WithFlasher(sessions),
		handler.WithSessionSaver(sessions),
		handler.WithPages(handler.TemplPages{
			handler.PageNotFound:    errorPage,
			handler.PageServerError: errorPage,
		}),
		handler.WithToast(errorToast),
		handler.WithOnError(func(ctx context.Context, rec handler.ErrorRecord) {
			if rec.IsCodeBug {
				log.WarnContext(ctx, "code bug reported to user as 500",
					logger.ErrorID(rec.ID),
					logger.Event("code_bug"),
				)
			}
		}),
	)

	d := &demo{cfg: cfg, engine: engine}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware())
	r.Use(environment.Middleware(env))
	r.Use(i18n.Middleware(translator))
	r.Use(sessions.Middleware)
	r.Use(engine.Middleware)
	r.NotFound(engine.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(engine.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/live", httpserver.Liveness())
	r.Get("/ready", httpserver.Readiness(checks, func(w http.ResponseWriter, r *http.Request, err error) {
		engine.ServeError(w, r, handler.ErrServiceUnavailable.Wrap(err))
	}))

	d.routes(r)
	r.Route("/api", func(r chi.Router) {
		r.Use(handler.MarkAPI)
		d.routes(r)
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithBaseContext(func(ctx context.Context) context.Context {
			return environment.WithContext(ctx, env)
		}),
	)
	return srv.Run(ctx, r)
}

type demo struct {
	cfg    appConfig
	engine *handler.Engine
}

func (d *demo) wrap(h handler.HandlerFunc[handler.Context], decorators ...handler.Decorator[handler.Context]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithErrorHandler(d.engine.Handle),
		handler.WithDecorators(decorators...),
	)
}

func (d *demo) routes(r chi.Router) {
	hash, err := bcrypt.GenerateFromPassword([]byte(d.cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	admins := handler.BcryptCredentials{d.cfg.AdminUser: hash}

	r.Get("/", d.wrap(func(handler.Context) handler.Response {
		return handler.Text("errdemo: try /404, /basic-auth, /html, /validation, /redis-error, /mongo-error")
	}))
	r.Get("/basic-auth", d.wrap(func(handler.Context) handler.Response {
		return handler.Text("welcome, admin")
	}, handler.BasicAuth[handler.Context]("Secure Area", admins)))
	r.Get("/html", d.wrap(func(handler.Context) handler.Response {
		return handler.Fail(handler.NewHTTPError(http.StatusBadRequest,
			`<strong>Hello world</strong> How are you? <a href="https://github.com">github.com</a>`))
	}))
	r.Post("/validation", d.wrap(func(ctx handler.Context) handler.Response {
		req := ctx.Request()
		verr := handler.NewValidationError()
		if req.FormValue("email") == "" {
			verr.AddKind("email", handler.KindRequired)
		}
		if req.FormValue("password") == "" {
			verr.AddKind("password", handler.KindRequired)
		}
		if !verr.IsEmpty() {
			return handler.Fail(verr)
		}
		return handler.JSONWithStatus(http.StatusCreated, map[string]string{"email": req.FormValue("email")})
	}))
	r.Get("/login-locked", d.wrap(func(handler.Context) handler.Response {
		return handler.Fail(handler.ErrTooManyAttempts)
	}))
	r.Get("/oauth", d.wrap(func(handler.Context) handler.Response {
		return handler.Fail(&oauth2.RetrieveError{ErrorCode: "slow_down", ErrorDescription: "Polling too fast"})
	}))
	r.Get("/redis-error", d.wrap(func(handler.Context) handler.Response {
		return handler.Fail(fmt.Errorf("load cart: %w", goredis.ErrClosed))
	}))
	r.Get("/pg-error", d.wrap(func(ctx handler.Context) handler.Response {
		conn, err := pgconn.Connect(ctx, d.cfg.PostgresDSN)
		if err != nil {
			return handler.Fail(err)
		}
		defer conn.Close(ctx)
		return handler.Text("postgres reachable")
	}))
	r.Get("/mongo-error", d.wrap(func(ctx handler.Context) handler.Response {
		client, err := mongo.Connect(options.Client().ApplyURI(d.cfg.MongoURI))
		if err != nil {
			return handler.Fail(err)
		}
		if err := client.Disconnect(ctx); err != nil {
			return handler.Fail(err)
		}
		return handler.Fail(client.Ping(ctx, nil))
	}))
	r.Get("/dns-error", d.wrap(func(ctx handler.Context) handler.Response {
		_, err := net.DefaultResolver.LookupHost(ctx, "does-not-exist.invalid")
		return handler.Fail(err)
	}))
	r.Get("/upstream", d.wrap(func(handler.Context) handler.Response {
		return handler.Fail(&smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusServiceUnavailable}},
			Err:      errors.New("SlowDown: please reduce your request rate"),
		})
	}))
	r.Get("/slow", d.wrap(func(ctx handler.Context) handler.Response {
		tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		<-tctx.Done()
		return handler.Fail(tctx.Err())
	}))
	r.Get("/panic", d.wrap(func(handler.Context) handler.Response {
		var m map[string]int
		m["boom"]++
		return handler.Empty()
	}))
	r.Get("/{code}", d.wrap(func(ctx handler.Context) handler.Response {
		code, err := strconv.Atoi(chi.URLParam(ctx.Request(), "code"))
		if err != nil {
			return handler.Fail(handler.ErrNotFound)
		}
		panic(code)
	}))
}
