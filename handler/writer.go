package handler

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// ResponseWriter records whether the response has started. Every writer the
// engine sees is wrapped in one so the "write once" guard can be checked.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	sent   bool
}

// TrackWriter wraps w. A writer that is already tracked is returned as is.
func TrackWriter(w http.ResponseWriter) *ResponseWriter {
	if tw, ok := w.(*ResponseWriter); ok {
		return tw
	}
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) WriteHeader(code int) {
	// Informational responses other than a protocol switch leave the final
	// header block unsent.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	if w.sent {
		return
	}
	w.status = code
	w.sent = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.status = http.StatusOK
		w.sent = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush commits the headers.
func (w *ResponseWriter) Flush() {
	if !w.sent {
		w.status = http.StatusOK
		w.sent = true
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection over. A hijacked response counts as sent.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("handler: underlying ResponseWriter does not support hijacking")
	}
	conn, rw, err := h.Hijack()
	if err == nil {
		w.sent = true
	}
	return conn, rw, err
}

func (w *ResponseWriter) HeadersSent() bool { return w.sent }

// Status returns the committed status, or 0 before anything was written.
func (w *ResponseWriter) Status() int { return w.status }

func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// headersSent walks the Unwrap chain looking for a writer that knows.
func headersSent(w http.ResponseWriter) bool {
	for w != nil {
		if hs, ok := w.(interface{ HeadersSent() bool }); ok {
			return hs.HeadersSent()
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return false
		}
		w = u.Unwrap()
	}
	return false
}
