// Package logger owns the process-wide zap logger. Subsystems take a named
// child via WithModule instead of holding their own logger configuration.
package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var root atomic.Pointer[zap.Logger]

func init() {
	root.Store(zap.NewNop())
}

// Init builds the global logger at the given level. Unknown or empty level
// strings fall back to info rather than failing startup.
func Init(level string) error {
	parsed, err := zapcore.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = parsed > zapcore.DebugLevel

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	root.Store(built)
	return nil
}

// Logger returns the current global logger.
func Logger() *zap.Logger {
	return root.Load()
}

// WithModule returns a child logger scoped to a subsystem. The module name
// shows up as a structured field so log pipelines can filter on it.
func WithModule(module string) *zap.Logger {
	return Logger().With(zap.String("module", module))
}

// Sync flushes buffered entries. Safe to call on the nop logger.
func Sync() error {
	return Logger().Sync()
}
