package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "kebab-sayank-be"

var log *zap.Logger

// deployed reports whether env runs behind a log collector and wants JSON.
func deployed(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "staging":
		return true
	}
	return false
}

// jsonConfig is the collector friendly shape: one object per line on stdout,
// tagged with the service and environment.
func jsonConfig(env string) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	cfg.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     env,
	}
	return cfg
}

func consoleConfig() zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// Init replaces the process logger. Staging and production log JSON,
// anything else gets a coloured console.
func Init(env string) {
	cfg := consoleConfig()
	if deployed(env) {
		cfg = jsonConfig(env)
	}

	built, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	log = built
}

// L returns the process logger, building one from APP_ENV on first use.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
