// Package logger builds the zap logger used by the command line tool.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger.
type Config struct {
	// Env selects the output: "dev" (colored console) or "prod" (JSON).
	// Default: "dev".
	Env string

	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: "info".
	Level string
}

// New builds a logger for the given configuration. Logs go to stderr, so
// that they never mix with the command results printed on stdout.
func New(cfg Config) (*zap.Logger, error) {
	level := ParseLevel(cfg.Level)
	if strings.ToLower(strings.TrimSpace(cfg.Env)) == "prod" {
		return buildProd(level)
	}
	return buildDev(level)
}

// buildDev builds a colored console logger.
func buildDev(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build(zap.AddCaller())
}

// buildProd builds a JSON logger.
func buildProd(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// ParseLevel converts a level name to a zapcore.Level; unknown names map
// to info.
func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
