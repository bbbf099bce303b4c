// Package logging provides printf-style leveled logging for the whole tool,
// backed by zap. Call Init once at startup; the package-level functions are
// no-ops before that.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init builds the global logger. Level is a zap level string ("debug",
// "info", "warn", "error"); unknown values fall back to info. Development
// mode switches to the human-readable console encoder with colored levels.
func Init(level string, development bool) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	sugar = logger.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = sugar.Sync()
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	sugar.Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
}

// Fatal logs a fatal message and exits.
func Fatal(format string, args ...interface{}) {
	sugar.Fatalf(format, args...)
}
