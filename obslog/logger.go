// File: logger.go
// Role: a thin *zap.Logger wrapper plus per-query correlation IDs, used by
// the docalc facade to log backdoor-shortcut hits, rule-search fallbacks,
// and terminal errors without ever reaching for a global logger.
package obslog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger, queried through the methods below instead of
// by direct field access, so call sites never reach into zap's own API
// surface.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger at the given minimum level, using a development-style
// console encoder (ISO8601 timestamps, capitalized level names) so output
// reads well both in tests and on a terminal.
func New(level zapcore.Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	z, err := cfg.Build()
	if err != nil {
		// zap.NewDevelopmentConfig().Build() only fails on a broken sink
		// configuration; this one is a constant, in-process config.
		panic("obslog: failed to build logger: " + err.Error())
	}
	return &Logger{z: z}
}

// Noop returns a Logger that discards everything, for tests and callers
// that have no logging backend configured.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

type queryIDKey struct{}

// WithQueryID stamps a fresh correlation ID onto ctx and returns a child
// logger that attaches it to every subsequent log line. Call once per
// top-level docalc.Engine operation.
func WithQueryID(ctx context.Context, l *Logger) (context.Context, *Logger) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, queryIDKey{}, id)
	return ctx, &Logger{z: l.z.With(zap.String("query_id", id))}
}

// QueryID extracts the correlation ID stamped by WithQueryID, or "" if none.
func QueryID(ctx context.Context) string {
	id, _ := ctx.Value(queryIDKey{}).(string)
	return id
}

// Info logs msg at info level with the given fields.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.z.Info(msg, fields...) }

// Warn logs msg at warn level with the given fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.z.Warn(msg, fields...) }

// Error logs msg at error level with the given fields.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }
