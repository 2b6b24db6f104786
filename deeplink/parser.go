package deeplink

import (
	"errors"
	"net/url"
)

// SkipRule can be returned by a WalkFunc to stop walking without an error.
var SkipRule = errors.New("skip remaining rules") //nolint:revive,staticcheck // mirrors filepath.SkipAll

// WalkFunc is called for every rule visited by Parser.Walk, in priority
// order.
type WalkFunc func(index int, rule *Rule) error

// RuleMatch stores information about a matched rule.
type RuleMatch struct {
	// Rule is the rule that matched.
	Rule *Rule

	// Link is the deep link built by the rule.
	Link DeepLink
}

// Parser turns URIs into deep links using an ordered list of rules. The
// first rule that matches wins.
type Parser struct {
	rules []*Rule
	opts  options
}

// NewParser returns an empty parser.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: newOptions(opts)}
}

// AddRule appends a new rule named name and returns it for configuration.
func (p *Parser) AddRule(name string) *Rule {
	rule := newRule(name, p.opts)
	p.rules = append(p.rules, rule)
	return rule
}

// Len returns the number of registered rules.
func (p *Parser) Len() int {
	return len(p.rules)
}

// Parse returns the deep link built by the first matching rule.
func (p *Parser) Parse(u *url.URL) (DeepLink, bool) {
	var match RuleMatch
	if !p.Match(u, &match) {
		return nil, false
	}
	return match.Link, true
}

// Match evaluates rules in insertion order and fills match with the first
// one that matches.
func (p *Parser) Match(u *url.URL, match *RuleMatch) bool {
	return p.match(u, match, &trace{gen: p.opts.traceID})
}

func (p *Parser) match(u *url.URL, match *RuleMatch, tr *trace) bool {
	if u == nil {
		return false
	}
	for _, rule := range p.rules {
		if link, ok := rule.match(u, tr); ok {
			if match != nil {
				match.Rule = rule
				match.Link = link
			}
			return true
		}
	}
	return false
}

// Walk calls fn for every rule in priority order. Returning SkipRule stops
// the walk without an error.
func (p *Parser) Walk(fn WalkFunc) error {
	for i, rule := range p.rules {
		if err := fn(i, rule); err != nil {
			if errors.Is(err, SkipRule) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Err joins the configuration errors of all rules.
func (p *Parser) Err() error {
	var errs []error
	for _, rule := range p.rules {
		if rule.err != nil {
			errs = append(errs, rule.err)
		}
	}
	return errors.Join(errs...)
}
