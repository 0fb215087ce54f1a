package logger

import (
	"context"

	"go-gin-catalog/internal/requestctx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	var err error
	L, err = build(zapcore.InfoLevel)
	if err != nil {
		panic(err)
	}
}

func build(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	// stack traces are attached explicitly where they matter
	config.DisableStacktrace = true
	return config.Build(zap.AddCallerSkip(1))
}

// Init rebuilds the global logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	l, err := build(lvl)
	if err != nil {
		return err
	}
	L = l
	return nil
}

// Replace swaps the global logger, returning a func that restores the old one.
// Tests use it with zaptest/observer.
func Replace(l *zap.Logger) func() {
	prev := L
	L = l
	return func() { L = prev }
}

// WithComponent returns a logger carrying a component field for the handler,
// service, repository and middleware layers.
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

// FromContext returns a component logger enriched with the request's trace
// and user identifiers.
func FromContext(ctx context.Context, component string) *zap.Logger {
	return WithComponent(component).With(
		zap.String("trace_id", requestctx.TraceID(ctx)),
		zap.String("user_id", requestctx.UserID(ctx)),
	)
}

func Sync() {
	_ = L.Sync()
}
