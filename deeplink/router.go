package deeplink

import (
	"fmt"
	"net/url"
)

// Router parses incoming URIs into deep links and dispatches each link to
// the first registered handler whose type accepts it.
//
// Configure a router completely before routing from several goroutines;
// registration is not synchronized with routing.
//
//	r := deeplink.NewRouter()
//	r.AddParsingRule("video").
//		MatchingSchemePattern(`^https?$`).
//		MatchingAuthorityPattern(`^(www\.)?youtube\.com$`).
//		BuildingAs(func(c *deeplink.MatchContext) (deeplink.DeepLink, error) {
//			return VideoLink{Path: c.Path.Value()}, nil
//		})
//	r.OnDeepLink(deeplink.NewHandler(func(v VideoLink) { play(v) }))
type Router struct {
	parser      *Parser
	exporter    *Exporter
	handlers    []Handler
	middlewares []MiddlewareFunc
	opts        options
}

// NewRouter returns a router with an empty parser and exporter. Options
// apply to every rule, the exporter and dispatch.
func NewRouter(opts ...Option) *Router {
	o := newOptions(opts)
	return &Router{
		parser:   &Parser{opts: o},
		exporter: &Exporter{opts: o},
		opts:     o,
	}
}

// AddParsingRule appends a parsing rule and returns it for configuration.
func (r *Router) AddParsingRule(name string) *Rule {
	return r.parser.AddRule(name)
}

// AddExportRule appends a serializer built with NewSerializer.
func (r *Router) AddExportRule(s Serializer) error {
	return r.exporter.AddRule(s)
}

// OnDeepLink appends a handler built with NewHandler. Only the first
// handler whose type accepts a parsed link runs, so registration order is
// dispatch priority.
func (r *Router) OnDeepLink(h Handler) error {
	if err := h.validate(); err != nil {
		return fmt.Errorf("deeplink: handler: %w", err)
	}
	r.handlers = append(r.handlers, h)
	return nil
}

// Use appends middleware applied to the selected handler. The first
// middleware is the outermost one.
func (r *Router) Use(mw ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Parser returns the router's parser.
func (r *Router) Parser() *Parser {
	return r.parser
}

// Parse parses u without dispatching it.
func (r *Router) Parse(u *url.URL) (DeepLink, bool) {
	return r.parser.Parse(u)
}

// ProcessDeepLink parses u and runs the first handler that accepts the
// resulting link. It reports whether a handler was selected; the link then
// went through the middleware chain, which may still drop it before the
// handler runs. A URI no rule matches, or a link no handler accepts, is a
// normal outcome and is not reported.
func (r *Router) ProcessDeepLink(u *url.URL) bool {
	tr := &trace{gen: r.opts.traceID}

	var match RuleMatch
	if !r.parser.match(u, &match, tr) {
		return false
	}

	for _, h := range r.handlers {
		if !h.accepts(match.Link) {
			continue
		}
		r.dispatch(h, u, match, tr)
		return true
	}
	return false
}

// ProcessDeepLinkString parses raw as an absolute URI and processes it.
func (r *Router) ProcessDeepLinkString(raw string) (bool, error) {
	u, err := ParseURI(raw)
	if err != nil {
		return false, err
	}
	return r.ProcessDeepLink(u), nil
}

// dispatch runs h through the middleware chain, containing panics.
func (r *Router) dispatch(h Handler, u *url.URL, match RuleMatch, tr *trace) {
	defer func() {
		if p := recover(); p != nil {
			r.opts.report(Diagnostic{
				Kind:    DiagnosticHandlerFailed,
				Rule:    match.Rule.Name(),
				URI:     u.String(),
				Variant: variantName(match.Link),
				Trace:   tr.get(),
				Err:     fmt.Errorf("deeplink: panic in handler for %s: %v", h.Variant(), p),
			})
		}
	}()

	handler := h.fn
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	handler(match.Link)
}

// ExportDeepLink serializes link through the router's exporter.
func (r *Router) ExportDeepLink(link DeepLink) string {
	return r.exporter.Export(link)
}

// Err joins the configuration errors of all parsing rules.
func (r *Router) Err() error {
	return r.parser.Err()
}
