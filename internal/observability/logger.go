// Package observability provides the zap logger, request logging, panic recovery
// and OpenTelemetry tracing used by the server and the prerender tool.
package observability

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

const defaultLogLevel = zapcore.InfoLevel

type loggerConfig struct {
	development bool
	outputs     []string
}

// LoggerOption customises NewLogger.
type LoggerOption func(*loggerConfig)

// WithDevelopment switches to a coloured console encoder for local runs.
func WithDevelopment(enabled bool) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.development = enabled
	}
}

// WithOutputPaths overrides where log lines are written (default stdout).
func WithOutputPaths(paths ...string) LoggerOption {
	return func(cfg *loggerConfig) {
		if len(paths) > 0 {
			cfg.outputs = paths
		}
	}
}

// ParseLevel maps a LOG_LEVEL value to a zap level. Unknown or blank values
// yield info.
func ParseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || strings.TrimSpace(level) == "" {
		return defaultLogLevel
	}
	return lvl
}

// NewLogger builds the process logger. Production output is JSON with
// message/timestamp/severity keys, so Cloud Logging picks up the severity.
func NewLogger(level string, opts ...LoggerOption) (*zap.Logger, error) {
	lc := loggerConfig{outputs: []string{"stdout"}}
	for _, opt := range opts {
		opt(&lc)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "severity",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}
	encoding := "json"
	if lc.development {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:       lc.development,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       lc.outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !lc.development,
	}
	return cfg.Build()
}

// WithLogger injects the logger into the provided context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return requestctx.WithLogger(ctx, logger)
}

// FromContext retrieves the logger from context, defaulting to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	return requestctx.Logger(ctx)
}
