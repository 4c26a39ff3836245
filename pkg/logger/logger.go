package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelEnvVar overrides the minimum log level (debug, info, warn, error).
const levelEnvVar = "LABELTRACKER_LOG_LEVEL"

// New instantiates a production-ready zap logger with sane defaults for JSON
// structured logging. The level defaults to info and can be lowered to debug
// via LABELTRACKER_LOG_LEVEL when chasing sync or scheduler issues.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())

	return cfg.Build()
}

// Must is a helper that panics when the logger cannot be created.
func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return logger
}

func levelFromEnv() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(os.Getenv(levelEnvVar))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
