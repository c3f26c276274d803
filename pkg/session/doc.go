// Package session keeps small per-visitor state, mainly flash messages that
// survive a redirect.
//
// A Manager loads the session named by a signed cookie into the request
// context. Handlers add flashes with Flash; Save persists the session and
// sets the cookie, and must run before the response is committed. When the
// ResponseWriter reports that headers are already out, Save returns
// ErrHeadersSent and persists nothing.
//
// Sessions live in a Store: MemoryStore for tests and single instances,
// RedisStore (go-redis) for everything else. Values round-trip through JSON,
// so numbers read back as float64.
package session
