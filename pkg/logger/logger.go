// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment settled", "amount", 99.99)
//	// → time=... level=INFO msg="payment settled" request_id=a1b2c3d4 amount=99.99
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/bistro/config"
)

var L *slog.Logger

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		// structured JSON for log aggregators
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// human-readable for dev
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// UseMongo fans the logger out to an asynchronous MongoDB handler in addition
// to stdout. Called once at startup when LOG_MONGO is enabled; the returned
// handler must be Closed on shutdown to flush pending records.
func UseMongo(uri, db string) (*MongoHandler, error) {
	mh, err := NewMongoHandler(uri, db, "logs")
	if err != nil {
		return nil, err
	}

	L = slog.New(NewMultiHandler(baseHandler(), mh))
	slog.SetDefault(L)
	return mh, nil
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger injected by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
