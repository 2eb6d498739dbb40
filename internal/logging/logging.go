// Package logging builds the structured logger used around region and
// transaction lifecycle events. The protocol itself never calls into this
// package directly (see DESIGN.md): only the handle layer does, so a host
// that never imports handle never pays for logging.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger at the given level ("debug", "info", "warn",
// "error"), matching the teacher's level-from-config construction in
// scheduler/server/config/config.go.
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	return cfg.Build()
}

// Nop returns a logger that discards everything, for hosts and tests that
// don't care to observe lifecycle events.
func Nop() *zap.Logger {
	return zap.NewNop()
}
