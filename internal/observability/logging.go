// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

// Context keys recognized by the context-aware log handler.
const (
	CorrelationIDKey contextKey = "correlation_id"
	PassKey          contextKey = "pass"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if cid, ok := ctx.Value(CorrelationIDKey).(string); ok {
		r.AddAttrs(slog.String("correlation_id", cid))
	}
	if pass, ok := ctx.Value(PassKey).(string); ok {
		r.AddAttrs(slog.String("pass", pass))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	var handler slog.Handler
	level := slog.LevelInfo

	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Pretty text output for local development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	Logger = slog.New(&ctxHandler{handler})
}

// WithCorrelationID returns a new context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithPass returns a new context labeled with the reconciliation pass name.
func WithPass(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, PassKey, name)
}
