// Package requestctx carries request-scoped values shared by the HTTP layers:
// the request logger, trace identifiers, and the visitor's language and colour
// mode as negotiated by middleware.
package requestctx

import (
	"context"

	"go.uber.org/zap"
)

type key int

const (
	loggerKey key = iota
	traceKey
	colorModeKey
	langKey
)

var noopLogger = zap.NewNop()

// TraceInfo captures trace metadata propagated through request context.
type TraceInfo struct {
	TraceID string
	SpanID  string
	Sampled bool
}

func with(ctx context.Context, k key, v any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, k, v)
}

func value[T any](ctx context.Context, k key) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// WithLogger stores logger on ctx. A nil logger stores the no-op logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = noopLogger
	}
	return with(ctx, loggerKey, logger)
}

// Logger returns the request logger, or a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := value[*zap.Logger](ctx, loggerKey); ok && l != nil {
		return l
	}
	return noopLogger
}

// NoopLogger is the shared fallback returned by Logger.
func NoopLogger() *zap.Logger { return noopLogger }

func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	return with(ctx, traceKey, info)
}

func Trace(ctx context.Context) (TraceInfo, bool) {
	return value[TraceInfo](ctx, traceKey)
}

// TraceID is the W3C trace id of the request, or "".
func TraceID(ctx context.Context) string {
	info, _ := Trace(ctx)
	return info.TraceID
}

// WithColorMode records the visitor's colour mode ("light" or "dark").
func WithColorMode(ctx context.Context, mode string) context.Context {
	return with(ctx, colorModeKey, mode)
}

func ColorMode(ctx context.Context) string {
	mode, _ := value[string](ctx, colorModeKey)
	return mode
}

// WithLang records the negotiated document language.
func WithLang(ctx context.Context, lang string) context.Context {
	return with(ctx, langKey, lang)
}

func Lang(ctx context.Context) string {
	lang, _ := value[string](ctx, langKey)
	return lang
}
