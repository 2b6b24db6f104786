// Package deeplinkhandlers provides handler middleware and logging adapters
// for the deeplink router.
//
// # Diagnostics
//
// ZapDiagnostics turns router diagnostics into structured zap log entries.
// Configuration errors and contained faults are logged at warn level.
//
//	logger, _ := zap.NewProduction()
//	r := deeplink.NewRouter(
//	    deeplink.WithDiagnostics(deeplinkhandlers.ZapDiagnostics(logger)),
//	)
//
// # Logging Middleware
//
// LoggingMiddleware logs every deep link that reaches a handler, together
// with its Go type and, when an export function is configured, its URI.
//
//	r.Use(deeplinkhandlers.LoggingMiddleware(deeplinkhandlers.LoggingConfig{
//	    Logger: logger,
//	    Export: r.ExportDeepLink,
//	}))
//
// # Debounce Middleware
//
// DebounceMiddleware drops a deep link identical to one dispatched within
// a time window. Hosts commonly report the launch URI both at startup and
// through their activation callback.
//
//	mw, err := deeplinkhandlers.DebounceMiddleware(deeplinkhandlers.DebounceConfig{
//	    Window: 2 * time.Second,
//	    Key:    r.ExportDeepLink,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
package deeplinkhandlers
