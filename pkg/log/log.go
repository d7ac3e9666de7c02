// Package log builds the zap.Logger used at the CLI boundary and the
// warning-sink adapter the bufr query core expects (bufr/target.WarnFunc).
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction. A zero Config yields an info-level
// JSON logger writing to stderr.
type Config struct {
	Level string // "debug", "info", "warn", "error"; default "info"
	Path  string // if set, logs are rotated into this file via lumberjack
}

// New builds a *zap.Logger per Config.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var sink zapcore.WriteSyncer
	if cfg.Path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core), nil
}

// WarnSink returns a func(string) suitable as the bufr query core's
// injectable warning sink, logging each call at zap Warn level.
func WarnSink(logger *zap.Logger) func(string) {
	return func(msg string) {
		logger.Warn(msg)
	}
}
