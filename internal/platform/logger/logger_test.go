package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "warn"})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.Same(t, l, slog.Default())
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	l := logger.New(buf, slog.LevelInfo)

	l.Debug("hidden")
	l.Info("shown", "component", "test")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestRedactHandler(t *testing.T) {
	t.Parallel()

	l, buf := logger.GetTestLogger(t)

	l.Error("database unavailable",
		"error", errors.New("connect postgres://tasker:hunter2@db/tasks: refused"),
	)
	l.With("error", "password=topsecret").Warn("bad login")
	l.Info("grouped", slog.Group("req", slog.Any("error", errors.New("SELECT id FROM tasks"))))

	logs := buf.String()
	assert.NotContains(t, logs, "hunter2")
	assert.NotContains(t, logs, "topsecret")
	assert.NotContains(t, logs, "SELECT id")
	logger.AssertLogContains(t, buf, "[REDACTED_CREDENTIAL]")
	logger.AssertLogContains(t, buf, "[REDACTED_SQL]")
}

func TestRedactHandler_LeavesOtherStrings(t *testing.T) {
	t.Parallel()

	l, buf := logger.GetTestLogger(t)
	l.Info("created", "title", "SELECT a gift FROM the shop")

	logger.AssertLogField(t, buf, "title", "SELECT a gift FROM the shop")
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	fallback, fallbackBuf := logger.GetTestLogger(t)

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background()))

	ctx, buf := logger.NewLogCaptureContext(t)
	ctx = logger.WithTraceID(ctx, "trace-123")

	logger.FromContextOrDefault(ctx, fallback).Info("inside request")

	logger.AssertLogField(t, buf, logger.TraceIDKey, "trace-123")
	assert.Empty(t, fallbackBuf.String())
}
