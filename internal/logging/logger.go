// Package logging defines the structured-logging interface used across the
// client. Two backends are provided: log/slog (default) and zerolog.
package logging

import (
	"context"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request done", "method", "GET", "status", 200)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// New builds a Logger writing to w. Unknown backends fall back to slog and
// unknown levels to info.
func New(w io.Writer, backend, level string) Logger {
	switch strings.ToLower(backend) {
	case BackendZerolog:
		return newZerolog(w, level)
	default:
		return newSlog(w, level)
	}
}
