// Package logging provides structured logging helpers for the codemod.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

type contextKey string

const loggerKey contextKey = "logger"

// Logger wraps slog.Logger with convenience methods
type Logger struct {
	*slog.Logger
}

// Config holds logging configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, text; empty picks text on a terminal, json otherwise
	Output io.Writer // defaults to os.Stderr so stdout only carries the report
}

// ParseLevel maps a level name to a slog level. Unknown names map to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger creates a new structured logger based on configuration
func NewLogger(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location when debugging
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if resolveFormat(cfg.Format, out) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

func resolveFormat(format string, out io.Writer) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return "json"
	case "text":
		return "text"
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

// WithRunID returns a new logger with the run ID field attached
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("run_id", runID)),
	}
}

// WithFields returns a new logger with additional fields
func (l *Logger) WithFields(fields ...any) *Logger {
	return &Logger{
		Logger: l.With(fields...),
	}
}

// FromContext retrieves the logger from context, or returns a default logger
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger: slog.Default(),
	}
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
