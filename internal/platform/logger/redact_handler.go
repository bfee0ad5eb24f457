package logger

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasker-api/internal/redact"
)

// RedactHandler is a slog.Handler that scrubs error values and the "error"
// attribute before delegating to the wrapped handler, so connection strings,
// tokens and SQL never reach the log sink.
type RedactHandler struct {
	handler slog.Handler
}

var _ slog.Handler = (*RedactHandler)(nil)

// NewRedactHandler wraps h.
func NewRedactHandler(h slog.Handler) *RedactHandler {
	return &RedactHandler{handler: h}
}

// Enabled implements the slog.Handler interface.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(cleaned)}
}

// WithGroup implements the slog.Handler interface.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// Handle implements the slog.Handler interface.
func (h *RedactHandler) Handle(ctx context.Context, record slog.Record) error {
	cleaned := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, cleaned)
}

func redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		cleaned := make([]any, len(group))
		for i, ga := range group {
			cleaned[i] = redactAttr(ga)
		}
		return slog.Group(a.Key, cleaned...)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, redact.Error(err))
		}
	case slog.KindString:
		if a.Key == "error" {
			return slog.String(a.Key, redact.String(v.String()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}
