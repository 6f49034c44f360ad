package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{ name string }

var (
	requestIDKey = contextKey{"request_id"}
	actionKey    = contextKey{"action"}
)

// Поля, которые FromContext переносит в каждую запись.
var contextFields = []contextKey{requestIDKey, actionKey}

// WithRequestID добавляет request ID в context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithAction помечает context действием консоли (create/update/delete/status_update)
func WithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, actionKey, action)
}

func GetRequestID(ctx context.Context) string { return field(ctx, requestIDKey) }
func GetAction(ctx context.Context) string    { return field(ctx, actionKey) }

func field(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// FromContext создает логгер с полями из context
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	for _, key := range contextFields {
		if v := field(ctx, key); v != "" {
			l = l.With(key.name, v)
		}
	}
	return l
}

func logCtx(ctx context.Context, level slog.Level, msg string, args []any) {
	FromContext(ctx).Log(ctx, level, msg, args...)
}

func CtxDebug(ctx context.Context, msg string, args ...any) { logCtx(ctx, slog.LevelDebug, msg, args) }
func CtxInfo(ctx context.Context, msg string, args ...any)  { logCtx(ctx, slog.LevelInfo, msg, args) }
func CtxWarn(ctx context.Context, msg string, args ...any)  { logCtx(ctx, slog.LevelWarn, msg, args) }
func CtxError(ctx context.Context, msg string, args ...any) { logCtx(ctx, slog.LevelError, msg, args) }

// CtxWithError логирует error с error объектом
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	logCtx(ctx, slog.LevelError, msg, append([]any{"error", err.Error()}, args...))
}
