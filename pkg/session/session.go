package session

import (
	"time"

	"github.com/google/uuid"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Session struct {
	ID        uuid.UUID      `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	Flashes   []Flash        `json:"flashes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`

	isNew bool
	dirty bool
}

func newSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Data:      make(map[string]any),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		isNew:     true,
	}
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsNew reports whether the session has never been saved.
func (s *Session) IsNew() bool { return s.isNew }

func (s *Session) Get(key string) (any, bool) {
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.dirty = true
}

func (s *Session) Delete(key string) {
	if _, ok := s.Data[key]; ok {
		delete(s.Data, key)
		s.dirty = true
	}
}

// AddFlash queues a flash message.
func (s *Session) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
	s.dirty = true
}

// PopFlashes returns queued flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return out
}
