package httpserver_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httperr/pkg/httpserver"
)

type ctxKey struct{}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithBaseContext(func(ctx context.Context) context.Context {
			return context.WithValue(ctx, ctxKey{}, "base")
		}),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan any, 1)
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen <- r.Context().Value(ctxKey{})
		}))
	}()

	var (
		resp *http.Response
		err  error
	)
	for range 50 {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "base", <-seen)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestRunTwice(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	srv := httpserver.New(httpserver.WithAddr(addr))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
	assert.ErrorIs(t, err, httpserver.ErrStart)

	cancel()
	require.NoError(t, <-done)
}

func TestRunListenFailure(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := httpserver.New(httpserver.WithAddr(l.Addr().String()))
	assert.ErrorIs(t, srv.Run(context.Background(), nil), httpserver.ErrStart)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	var failed error
	fail := func(w http.ResponseWriter, _ *http.Request, err error) {
		failed = err
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	h := httpserver.Readiness(map[string]httpserver.Check{
		"db":    func(context.Context) error { return nil },
		"cache": func(context.Context) error { return errors.New("connection refused") },
	}, fail)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.ErrorIs(t, failed, httpserver.ErrNotReady)
	assert.ErrorContains(t, failed, "cache: connection refused")

	w = httptest.NewRecorder()
	httpserver.Readiness(nil, fail)(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, "READY", w.Body.String())

	w = httptest.NewRecorder()
	httpserver.Liveness()(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "ALIVE", w.Body.String())
}
