package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httperr/handler"
)

func TestTrackWriter(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		w := handler.TrackWriter(httptest.NewRecorder())
		assert.Same(t, w, handler.TrackWriter(w))
	})

	t.Run("write commits", func(t *testing.T) {
		t.Parallel()
		w := handler.TrackWriter(httptest.NewRecorder())
		assert.False(t, w.HeadersSent())
		_, _ = w.Write([]byte("x"))
		assert.True(t, w.HeadersSent())
		assert.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("informational status does not commit", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := handler.TrackWriter(rec)
		w.WriteHeader(http.StatusEarlyHints)
		assert.False(t, w.HeadersSent())
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)
		assert.Equal(t, http.StatusCreated, w.Status())
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("flush commits", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := handler.TrackWriter(rec)
		w.Flush()
		assert.True(t, w.HeadersSent())
		assert.True(t, rec.Flushed)
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		assert.Same(t, rec, handler.TrackWriter(rec).Unwrap())
	})
}
