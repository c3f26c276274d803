package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start HTTP server")
	ErrShutdown       = errors.New("failed to shutdown HTTP server gracefully")
	ErrAlreadyRunning = errors.New("server already running")
	// ErrNotReady is reported when a readiness check fails.
	ErrNotReady = errors.New("service not ready")
)
