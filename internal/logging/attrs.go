package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attr is a structured log field.
type Attr = slog.Attr

// Any builds a field holding an arbitrary value, such as a map of counts.
func Any(key string, value any) Attr { return slog.Any(key, value) }

// Bool builds a boolean field.
func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

// Duration builds a duration field.
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Int builds an integer field.
func Int(key string, value int) Attr { return slog.Int(key, value) }

// Int64 builds a 64-bit integer field, used for row counts and byte sizes.
func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

// String builds a string field.
func String(key string, value string) Attr { return slog.String(key, value) }

// Error builds the "error" field. A nil error is logged as "<nil>".
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs into the variadic form accepted by slog.Logger methods.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component attribute. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
