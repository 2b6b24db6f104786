package deeplinkhandlers

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vitalvas/deeplinks/deeplink"
)

// LoggingConfig configures the Logging middleware behaviour.
type LoggingConfig struct {
	// Logger receives one entry per dispatched deep link. Defaults to a
	// no-op logger.
	Logger *zap.Logger

	// Level is the level entries are logged at. Defaults to info.
	Level zapcore.Level

	// Export is an optional function used to add the exported URI to each
	// entry, typically Router.ExportDeepLink.
	Export func(deeplink.DeepLink) string
}

// LoggingMiddleware returns a middleware that logs each deep link before
// passing it to the handler.
func LoggingMiddleware(cfg LoggingConfig) deeplink.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	level := cfg.Level
	export := cfg.Export

	return func(next deeplink.HandlerFunc) deeplink.HandlerFunc {
		return func(link deeplink.DeepLink) {
			if ce := logger.Check(level, "deep link dispatched"); ce != nil {
				fields := []zap.Field{zap.String("variant", fmt.Sprintf("%T", link))}
				if export != nil {
					fields = append(fields, zap.String("uri", export(link)))
				}
				ce.Write(fields...)
			}

			next(link)
		}
	}
}
