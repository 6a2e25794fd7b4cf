// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog or zerolog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "path", path, "status", status)
type Logger interface {
	// Debug logs verbose diagnostics (request traces, cache hits).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Format selects a Logger implementation.
type Format string

const (
	FormatSlog    Format = "slog"
	FormatZerolog Format = "zerolog"
)

// New builds the Logger selected by format, writing to w. Verbose enables
// debug output.
func New(format Format, w io.Writer, verbose bool) (Logger, error) {
	switch format {
	case FormatZerolog:
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		return NewConsoleLogger(w, level), nil
	case FormatSlog:
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return NewTextLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
