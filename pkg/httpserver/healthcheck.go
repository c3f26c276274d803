package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers 200 "ALIVE".
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness runs every check and answers 200 "READY" when all pass.
// Failures are joined under ErrNotReady and passed to fail, which owns the
// error response.
func Readiness(checks map[string]Check, fail func(http.ResponseWriter, *http.Request, error)) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		var errs []error
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		if len(errs) > 0 {
			fail(w, r, errors.Join(append([]error{ErrNotReady}, errs...)...))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("READY"))
	}
}
