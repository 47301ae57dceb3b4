// Package logging builds the structured loggers used across zenith. It wraps
// log/slog with level parsing, a text or JSON handler, and context
// propagation so request-scoped attributes follow a plan through the service.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnvVar forces debug logging regardless of configuration.
const DebugEnvVar = "ZENITH_DEBUG"

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DebugEnabled returns true if debug mode is enabled via ZENITH_DEBUG.
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// ParseLevel converts a level name to slog.Level. Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. format is "text" or "json"; anything
// else is treated as text.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if DebugEnabled() {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type loggerKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or fallback when there is
// none. A nil fallback means slog.Default().
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
