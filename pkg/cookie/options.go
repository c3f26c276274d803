package cookie

import "net/http"

type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

// Config is the env-tagged form of Options plus the secrets list.
type Config struct {
	Secrets []string `env:"COOKIE_SECRETS" envSeparator:","`
	Domain  string   `env:"COOKIE_DOMAIN"`
	Secure  bool     `env:"COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig builds a Manager from Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{WithDomain(cfg.Domain), WithSecure(cfg.Secure)}
	return New(cfg.Secrets, append(base, opts...)...)
}
