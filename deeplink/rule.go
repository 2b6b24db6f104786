package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

// DeepLink is a concrete, application-defined deep link value. Variants are
// plain value types; a router dispatches on their dynamic type.
type DeepLink any

// BuilderFunc turns a successful match into a deep link. Returning an error,
// or a nil link, makes the rule not match.
type BuilderFunc func(*MatchContext) (DeepLink, error)

// Rule is a named matching unit: one matcher per URI component plus a
// builder. Unconstrained components match anything. Rules are configured
// through chained setters; the first configuration error is kept, reported
// to the diagnostics sink right away, and makes the rule inert.
type Rule struct {
	name      string
	scheme    Matcher
	authority Matcher
	path      Matcher
	builder   BuilderFunc
	err       error
	opts      options
}

// NewRule returns a rule that matches any URI and has no builder yet.
func NewRule(name string, opts ...Option) *Rule {
	return newRule(name, newOptions(opts))
}

func newRule(name string, o options) *Rule {
	return &Rule{
		name:      name,
		scheme:    Any(),
		authority: Any(),
		path:      Any(),
		opts:      o,
	}
}

// Name returns the debug name of the rule.
func (r *Rule) Name() string {
	return r.name
}

// Err returns the first configuration error, if any.
func (r *Rule) Err() error {
	return r.err
}

// fail records the first configuration error and reports it.
func (r *Rule) fail(err error) *Rule {
	if r.err == nil {
		r.err = fmt.Errorf("deeplink: rule %q: %w", r.name, err)
		r.opts.report(Diagnostic{Kind: DiagnosticConfig, Rule: r.name, Err: r.err})
	}
	return r
}

// MatchingScheme sets the scheme matcher. Exact values are trimmed and must
// not be blank.
func (r *Rule) MatchingScheme(m Matcher) *Rule {
	m, err := prepareMatcher(m, false)
	if err != nil {
		return r.fail(fmt.Errorf("scheme: %w", err))
	}
	r.scheme = m
	return r
}

// MatchingAuthority sets the authority matcher. Exact values are trimmed
// and may be empty, which matches URIs without an authority.
func (r *Rule) MatchingAuthority(m Matcher) *Rule {
	m, err := prepareMatcher(m, true)
	if err != nil {
		return r.fail(fmt.Errorf("authority: %w", err))
	}
	r.authority = m
	return r
}

// MatchingPath sets the path matcher. Exact values are trimmed and must not
// be blank.
func (r *Rule) MatchingPath(m Matcher) *Rule {
	m, err := prepareMatcher(m, false)
	if err != nil {
		return r.fail(fmt.Errorf("path: %w", err))
	}
	r.path = m
	return r
}

// MatchingSchemePattern compiles expr and sets it as the scheme matcher.
func (r *Rule) MatchingSchemePattern(expr string) *Rule {
	m, err := Compile(expr)
	if err != nil {
		return r.fail(fmt.Errorf("scheme: %w", err))
	}
	return r.MatchingScheme(m)
}

// MatchingAuthorityPattern compiles expr and sets it as the authority
// matcher.
func (r *Rule) MatchingAuthorityPattern(expr string) *Rule {
	m, err := Compile(expr)
	if err != nil {
		return r.fail(fmt.Errorf("authority: %w", err))
	}
	return r.MatchingAuthority(m)
}

// MatchingPathPattern compiles expr and sets it as the path matcher.
func (r *Rule) MatchingPathPattern(expr string) *Rule {
	m, err := Compile(expr)
	if err != nil {
		return r.fail(fmt.Errorf("path: %w", err))
	}
	return r.MatchingPath(m)
}

// MatchingPathTemplate parses tpl and sets it as the path matcher.
// Template variables are available through MatchContext.Path.Named.
func (r *Rule) MatchingPathTemplate(tpl string) *Rule {
	t, err := ParseTemplate(tpl)
	if err != nil {
		return r.fail(fmt.Errorf("path: %w", err))
	}
	return r.MatchingPath(t.Matcher())
}

// BuildingAs sets the builder invoked on a successful match.
func (r *Rule) BuildingAs(fn BuilderFunc) *Rule {
	if fn == nil {
		return r.fail(fmt.Errorf("builder: %w", ErrNilFunc))
	}
	r.builder = fn
	return r
}

// prepareMatcher validates m and trims exact values.
func prepareMatcher(m Matcher, allowEmpty bool) (Matcher, error) {
	if !m.IsSet() {
		return Matcher{}, ErrInvalidMatcher
	}
	if m.IsExact() {
		v := strings.TrimSpace(m.exact)
		if v == "" && !allowEmpty {
			return Matcher{}, ErrBlankValue
		}
		return Exact(v), nil
	}
	if m.pattern.String() == "" {
		return Matcher{}, ErrEmptyPattern
	}
	return m, nil
}

// complete reports whether the rule can take part in matching.
func (r *Rule) complete() bool {
	return r.err == nil && r.scheme.IsSet() && r.authority.IsSet() && r.path.IsSet() && r.builder != nil
}

// Match matches u against the rule and returns the built deep link. It
// never panics: misconfiguration and builder faults are reported to the
// diagnostics sink and resolve to no match.
func (r *Rule) Match(u *url.URL) (DeepLink, bool) {
	return r.match(u, &trace{gen: r.opts.traceID})
}

func (r *Rule) match(u *url.URL, tr *trace) (link DeepLink, ok bool) {
	if u == nil {
		return nil, false
	}

	if !r.complete() {
		err := r.err
		if err == nil {
			err = fmt.Errorf("%w: %q", ErrIncompleteRule, r.name)
		}
		r.opts.report(Diagnostic{
			Kind:  DiagnosticIncompleteRule,
			Rule:  r.name,
			URI:   u.String(),
			Trace: tr.get(),
			Err:   err,
		})
		return nil, false
	}

	defer func() {
		if p := recover(); p != nil {
			r.opts.report(Diagnostic{
				Kind:  DiagnosticBuilderFailed,
				Rule:  r.name,
				URI:   u.String(),
				Trace: tr.get(),
				Err:   fmt.Errorf("deeplink: panic in rule %q: %v", r.name, p),
			})
			link, ok = nil, false
		}
	}()

	scheme, ok := r.scheme.Match(uriScheme(u))
	if !ok {
		return nil, false
	}
	authority, ok := r.authority.Match(uriAuthority(u))
	if !ok {
		return nil, false
	}
	path, ok := r.path.Match(uriPath(u))
	if !ok {
		return nil, false
	}

	link, err := r.builder(&MatchContext{
		URI:       u,
		Scheme:    scheme,
		Authority: authority,
		Path:      path,
		Query:     uriQuery(u),
	})
	if err != nil {
		r.opts.report(Diagnostic{
			Kind:  DiagnosticBuilderFailed,
			Rule:  r.name,
			URI:   u.String(),
			Trace: tr.get(),
			Err:   fmt.Errorf("deeplink: rule %q: %w", r.name, err),
		})
		return nil, false
	}
	if link == nil {
		return nil, false
	}

	return link, true
}
