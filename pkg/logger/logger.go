// Package logger carries zap loggers through context.Context. Code logs with
// the package helpers and the context it already has; request middlewares
// enrich that context with request-scoped fields.
package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects human-readable console output at debug level.
	DevelopmentEnvironment = "development"
	// ProductionEnvironment selects JSON output at info level.
	ProductionEnvironment = "production"

	// ServiceName is attached to every line written by loggers built with New.
	ServiceName = "veggieplan"
)

// process-wide fallback used when a context carries no logger.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// New builds a logger for environment. An empty level keeps the
// environment's default; otherwise it is parsed with zap's level names
// ("debug", "info", "warn", "error").
func New(environment, level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if environment == ProductionEnvironment {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		cfg.Level = lvl
	}

	cfg.InitialFields = map[string]any{"service": ServiceName}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}

	return l, nil
}

// Setup installs the logger built by New as the process default.
// Until it is called, logging without a context logger is discarded.
func Setup(environment, level string) error {
	l, err := New(environment, level)
	if err != nil {
		return err
	}
	defaultLogger = l

	return nil
}

type ctxKey struct{}

// Get returns the logger stored in ctx, or the process default.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(ctxKey{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithFields returns a copy of ctx whose logger adds fields to every line.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// write logs through the context logger. The caller skip points the
// reported caller at the code that called Debug, Info and so on.
func write(ctx context.Context, lvl zapcore.Level, msg string, fields []zapcore.Field) {
	if ce := Get(ctx).WithOptions(zap.AddCallerSkip(2)).Check(lvl, msg); ce != nil { //nolint: mnd
		ce.Write(fields...)
	}
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	write(ctx, zapcore.DebugLevel, msg, fields)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	write(ctx, zapcore.InfoLevel, msg, fields)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	write(ctx, zapcore.WarnLevel, msg, fields)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	write(ctx, zapcore.ErrorLevel, msg, fields)
}

// Fatal logs at fatal level and exits the process.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	write(ctx, zapcore.FatalLevel, msg, fields)
}

// StdLogger returns a standard library logger that forwards every line to the
// context's zap core at the given level. It is meant for APIs such as
// http.Server.ErrorLog that only accept *log.Logger.
func StdLogger(ctx context.Context, level slog.Level) *log.Logger {
	return slog.NewLogLogger(zapslog.NewHandler(Get(ctx).Core()), level)
}
