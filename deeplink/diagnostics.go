package deeplink

import (
	"github.com/google/uuid"
)

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind string

const (
	// DiagnosticConfig reports an invalid rule configuration.
	DiagnosticConfig DiagnosticKind = "config"

	// DiagnosticIncompleteRule reports a rule skipped during matching
	// because it is not completely configured.
	DiagnosticIncompleteRule DiagnosticKind = "incomplete-rule"

	// DiagnosticBuilderFailed reports a builder that returned an error or
	// panicked. The rule is treated as not matching.
	DiagnosticBuilderFailed DiagnosticKind = "builder-failed"

	// DiagnosticSerializerFailed reports a serializer that panicked.
	DiagnosticSerializerFailed DiagnosticKind = "serializer-failed"

	// DiagnosticHandlerFailed reports a handler that panicked.
	DiagnosticHandlerFailed DiagnosticKind = "handler-failed"
)

// Diagnostic is an out-of-band record of a contained fault. Unmatched URIs
// and unhandled links are normal outcomes and never produce one.
type Diagnostic struct {
	Kind DiagnosticKind

	// Rule is the debug name of the rule involved, if any.
	Rule string

	// URI is the URI being routed, if any.
	URI string

	// Variant is the Go type of the deep link involved, if any.
	Variant string

	// Trace correlates diagnostics emitted while routing one URI.
	Trace string

	Err error
}

// DiagnosticsFunc receives diagnostics. It is called synchronously; a
// panic inside it is recovered and discarded.
type DiagnosticsFunc func(Diagnostic)

// Option configures a Parser, Exporter, Router or Rule.
type Option func(*options)

type options struct {
	diagnostics DiagnosticsFunc
	traceID     func() string
}

// WithDiagnostics sets the sink that receives diagnostics. By default
// diagnostics are discarded.
func WithDiagnostics(fn DiagnosticsFunc) Option {
	return func(o *options) {
		o.diagnostics = fn
	}
}

// WithTraceIDFunc overrides how trace identifiers are generated. Defaults
// to random UUIDs.
func WithTraceIDFunc(fn func() string) Option {
	return func(o *options) {
		o.traceID = fn
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.traceID == nil {
		o.traceID = uuid.NewString
	}
	return o
}

// report hands d to the sink. A panicking sink is ignored so that
// matching, export and dispatch keep their no-panic guarantee.
func (o options) report(d Diagnostic) {
	if o.diagnostics == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	o.diagnostics(d)
}

// trace lazily assigns one identifier to every diagnostic of a single
// routing pass. Passes that emit nothing never generate an identifier.
type trace struct {
	id  string
	gen func() string
}

func (t *trace) get() string {
	if t == nil {
		return ""
	}
	if t.id == "" && t.gen != nil {
		t.id = t.gen()
	}
	return t.id
}
