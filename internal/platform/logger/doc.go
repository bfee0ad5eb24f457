// Package logger provides structured logging functionality for the application.
//
// It builds on log/slog with JSON output, a configurable level, a handler
// that redacts sensitive error text, and helpers for carrying a
// request-scoped logger through a context.Context.
package logger
