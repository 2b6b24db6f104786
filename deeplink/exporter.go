package deeplink

import (
	"fmt"
)

// BlankURI is returned when no serializer accepts a deep link.
const BlankURI = "about:blank"

// Exporter turns deep links back into URI strings using an ordered list of
// serializers. The first serializer whose type accepts the link wins.
type Exporter struct {
	rules []Serializer
	opts  options
}

// NewExporter returns an empty exporter.
func NewExporter(opts ...Option) *Exporter {
	return &Exporter{opts: newOptions(opts)}
}

// AddRule appends a serializer built with NewSerializer.
func (e *Exporter) AddRule(s Serializer) error {
	if err := s.validate(); err != nil {
		return fmt.Errorf("deeplink: export rule: %w", err)
	}
	e.rules = append(e.rules, s)
	return nil
}

// Len returns the number of registered serializers.
func (e *Exporter) Len() int {
	return len(e.rules)
}

// Export serializes link with the first serializer that accepts it, or
// returns BlankURI. It never fails: a panicking serializer is reported to
// the diagnostics sink and yields BlankURI.
func (e *Exporter) Export(link DeepLink) string {
	return e.export(link, &trace{gen: e.opts.traceID})
}

func (e *Exporter) export(link DeepLink, tr *trace) (uri string) {
	if link == nil {
		return BlankURI
	}
	for _, s := range e.rules {
		if !s.accepts(link) {
			continue
		}
		defer func() {
			if p := recover(); p != nil {
				e.opts.report(Diagnostic{
					Kind:    DiagnosticSerializerFailed,
					Variant: variantName(link),
					Trace:   tr.get(),
					Err:     fmt.Errorf("deeplink: panic in serializer for %s: %v", s.Variant(), p),
				})
				uri = BlankURI
			}
		}()
		return s.fn(link)
	}
	return BlankURI
}
