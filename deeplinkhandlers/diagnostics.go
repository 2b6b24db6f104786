package deeplinkhandlers

import (
	"go.uber.org/zap"

	"github.com/vitalvas/deeplinks/deeplink"
)

// ZapDiagnostics returns a diagnostics sink that logs to logger. A nil
// logger discards diagnostics.
func ZapDiagnostics(logger *zap.Logger) deeplink.DiagnosticsFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(d deeplink.Diagnostic) {
		fields := []zap.Field{
			zap.String("kind", string(d.Kind)),
		}
		if d.Rule != "" {
			fields = append(fields, zap.String("rule", d.Rule))
		}
		if d.URI != "" {
			fields = append(fields, zap.String("uri", d.URI))
		}
		if d.Variant != "" {
			fields = append(fields, zap.String("variant", d.Variant))
		}
		if d.Trace != "" {
			fields = append(fields, zap.String("trace_id", d.Trace))
		}
		if d.Err != nil {
			fields = append(fields, zap.Error(d.Err))
		}

		logger.Warn(message(d.Kind), fields...)
	}
}

func message(kind deeplink.DiagnosticKind) string {
	switch kind {
	case deeplink.DiagnosticConfig:
		return "invalid deep link rule"
	case deeplink.DiagnosticIncompleteRule:
		return "deep link rule ignored, not completely configured"
	case deeplink.DiagnosticBuilderFailed:
		return "deep link rule failed to build"
	case deeplink.DiagnosticSerializerFailed:
		return "deep link serializer failed"
	case deeplink.DiagnosticHandlerFailed:
		return "deep link handler failed"
	default:
		return "deep link diagnostic"
	}
}
