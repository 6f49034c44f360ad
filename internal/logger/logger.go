package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

// Init инициализирует глобальный логгер
// env: "development" - текст с debug, "test" - только warn и выше, иначе JSON
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter - то же самое, но с произвольным выводом (нужно тестам)
func InitWithWriter(env string, w io.Writer) {
	l := slog.New(newHandler(env, w))
	current.Store(l)
	slog.SetDefault(l)
}

func newHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "development":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true})
	case "test":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true})
	}
}

// GetLogger возвращает глобальный логгер, если Init не вызван - development
func GetLogger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	current.CompareAndSwap(nil, slog.New(newHandler("development", os.Stdout)))
	return current.Load()
}

func Debug(msg string, args ...any) { GetLogger().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetLogger().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetLogger().Warn(msg, args...) }
func Error(msg string, args ...any) { GetLogger().Error(msg, args...) }

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// UpstreamLog логирует запрос к REST API бэкенда
func UpstreamLog(method, path string, status int, duration time.Duration, err error) {
	l := GetLogger().With(
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
	)
	if err != nil {
		l.Warn("upstream request failed", "error", err.Error())
		return
	}
	l.Debug("upstream request")
}

// WorkerLog логирует работу фонового воркера
func WorkerLog(worker, operation string, err error) {
	l := GetLogger().With("worker", worker, "operation", operation)
	if err != nil {
		l.Error("worker operation failed", "error", err.Error())
		return
	}
	l.Debug("worker operation completed")
}
