package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var (
	// process-wide logger, replaced by Configure
	defaultLogger *slog.Logger
)

// key under which a request-scoped logger is stored
type loggerKey struct{}

// key under which the request trace id is stored
type traceKey struct{}

func init() {
	Configure(os.Getenv("ENVIRONMENT"), nil)
}

// builds the default logger for the given environment.
// production gets JSON at INFO, everything else text at DEBUG.
// a nil writer means stdout for production and stderr otherwise.
func Configure(environment string, w io.Writer) {
	var handler slog.Handler

	if environment == "production" {
		if w == nil {
			w = os.Stdout
		}

		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		if w == nil {
			w = os.Stderr
		}

		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler).With("service", "saleschat")
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger
}

// creates a logger with additional fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// returns the request-scoped logger if one was attached, else the default
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return defaultLogger
}

// attaches a logger to ctx
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// attaches a trace id and a logger carrying it
func WithTrace(ctx context.Context, traceID string) context.Context {
	ctx = context.WithValue(ctx, traceKey{}, traceID)
	return WithContext(ctx, FromContext(ctx).With("trace_id", traceID))
}

// returns the trace id stored by WithTrace, or ""
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error under the "error" key
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs and exits (for CLI entrypoints)
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}

// logs the error and exits (for CLI entrypoints)
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
