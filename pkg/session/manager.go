package session

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/httperr/pkg/cookie"
)

// Manager ties a Store to a signed session cookie.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	config  Config
	logger  *slog.Logger
}

type Option func(*Manager)

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New panics on a nil store or cookie manager so misconfiguration stops startup.
func New(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil || cookies == nil {
		panic("session: store and cookie manager are required")
	}
	m := &Manager{
		store:   store,
		cookies: cookies,
		config:  DefaultConfig(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns the session named by the request cookie, or a fresh unsaved one.
func (m *Manager) Load(r *http.Request) *Session {
	id, err := m.cookies.GetSigned(r, m.config.CookieName)
	if err != nil {
		return newSession(m.config.TTL)
	}

	s, err := m.store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.WarnContext(r.Context(), "session load failed", slog.Any("error", err))
		}
		return newSession(m.config.TTL)
	}
	if s.IsExpired() {
		return newSession(m.config.TTL)
	}
	return s
}

// Middleware puts the session into the request context. Changes made to an
// already persisted session are written back after the handler returns;
// new sessions need an explicit Save because their cookie must precede the body.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Load(r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))

		if s.dirty && !s.isNew {
			if err := m.store.Set(r.Context(), s, m.config.TTL); err != nil {
				m.logger.ErrorContext(r.Context(), "session commit failed", slog.Any("error", err))
				return
			}
			s.dirty = false
		}
	})
}

// Flash queues a message in the request's session.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	s, ok := FromContext(r.Context())
	if !ok {
		return ErrNoSession
	}
	s.AddFlash(kind, message)
	return nil
}

// Flashes pops the queued flash messages.
func (m *Manager) Flashes(r *http.Request) []Flash {
	s, ok := FromContext(r.Context())
	if !ok {
		return nil
	}
	return s.PopFlashes()
}

// Save persists the request's session and (re)issues its cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request) error {
	s, ok := FromContext(r.Context())
	if !ok {
		return ErrNoSession
	}
	if headersSent(w) {
		return ErrHeadersSent
	}
	if err := m.store.Set(r.Context(), s, m.config.TTL); err != nil {
		return err
	}
	m.cookies.SetSigned(w, m.config.CookieName, s.ID.String(), cookie.WithMaxAge(int(m.config.TTL.Seconds())))
	s.isNew = false
	s.dirty = false
	return nil
}

// Destroy removes the session and clears its cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	if s, ok := FromContext(r.Context()); ok && !s.isNew {
		if err := m.store.Delete(r.Context(), s.ID.String()); err != nil {
			return err
		}
	}
	m.cookies.Delete(w, m.config.CookieName)
	return nil
}

// headersSent walks the writer chain looking for one that tracks commits.
func headersSent(w http.ResponseWriter) bool {
	for w != nil {
		if t, ok := w.(interface{ HeadersSent() bool }); ok {
			return t.HeadersSent()
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return false
		}
		w = u.Unwrap()
	}
	return false
}
