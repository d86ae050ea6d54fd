package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the logger for one import run.
// level is one of "debug", "info", "warn", "error" (default "info");
// format is "json" or "console" (default "json").
//
// Entries below error go to stdout and errors go to stderr. Nothing is sampled:
// every record of a batch logs the same message and each line must be written.
func NewLogger(level, format, serviceName string) (*zap.Logger, error) {
	core := newCore(parseLevel(level), format, zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
	logger := zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr)))

	if serviceName != "" {
		logger = logger.With(zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		logger = logger.With(zap.String("hostname", hostname))
	}
	return logger, nil
}

// newCore splits output by severity: out receives entries from min up to warn,
// errOut receives error and above.
func newCore(min zapcore.Level, format string, out, errOut zapcore.WriteSyncer) zapcore.Core {
	enc := encoder(format)
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= min && l < zapcore.ErrorLevel })
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= min && l >= zapcore.ErrorLevel })
	return zapcore.NewTee(
		zapcore.NewCore(enc, out, low),
		zapcore.NewCore(enc.Clone(), errOut, high),
	)
}

func encoder(format string) zapcore.Encoder {
	if format == "console" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
