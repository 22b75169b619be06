package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")

	// ErrShutdown indicates graceful shutdown did not complete in time.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
