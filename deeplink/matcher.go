package deeplink

import (
	"fmt"
	"regexp"
	"slices"
)

// anyPattern matches any input as a whole, newlines included.
var anyPattern = regexp.MustCompile(`(?s).*`)

// Matcher matches a single URI component either against an exact value or
// against a regular expression. The zero Matcher is unset and is rejected
// by Rule setters.
type Matcher struct {
	exact   string
	isExact bool
	pattern *regexp.Regexp
}

// Exact returns a Matcher that accepts only input equal to value.
func Exact(value string) Matcher {
	return Matcher{exact: value, isExact: true}
}

// Pattern returns a Matcher backed by re. A nil re yields an unset Matcher.
func Pattern(re *regexp.Regexp) Matcher {
	return Matcher{pattern: re}
}

// Compile compiles expr and returns a pattern Matcher. Compiled expressions
// are cached, so repeated rules sharing a pattern share one *regexp.Regexp.
func Compile(expr string) (Matcher, error) {
	re, err := compilePattern(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("deeplink: invalid pattern %q: %w", expr, err)
	}
	return Pattern(re), nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) Matcher {
	m, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Any returns the Matcher used for components a rule does not constrain.
func Any() Matcher {
	return Pattern(anyPattern)
}

// IsSet reports whether exactly one matching mode is configured.
func (m Matcher) IsSet() bool {
	return m.isExact != (m.pattern != nil)
}

// IsExact reports whether the matcher compares against an exact value.
func (m Matcher) IsExact() bool {
	return m.isExact
}

// String returns the exact value or the pattern source.
func (m Matcher) String() string {
	if m.isExact {
		return m.exact
	}
	if m.pattern != nil {
		return m.pattern.String()
	}
	return ""
}

// Match matches input and returns the captured groups. The boolean is false
// when the input does not match or the matcher is unset.
func (m Matcher) Match(input string) (MatchSet, bool) {
	if !m.IsSet() {
		return MatchSet{}, false
	}

	if m.isExact {
		if input != m.exact {
			return MatchSet{}, false
		}
		return MatchSet{groups: [][]string{{input}}}, true
	}

	loc := m.pattern.FindStringSubmatchIndex(input)
	if loc == nil {
		return MatchSet{}, false
	}

	groups := make([][]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		// Optional groups that did not participate hold no captures.
		if start < 0 {
			groups[i] = []string{}
			continue
		}
		groups[i] = []string{input[start:end]}
	}

	return MatchSet{groups: groups, names: m.pattern.SubexpNames()}, true
}

// MatchSet is the result of one successful Matcher invocation: an ordered
// sequence of capture groups, each an ordered sequence of captured values.
// Group 0 holds the whole match.
type MatchSet struct {
	groups [][]string
	names  []string
}

// Len returns the number of capture groups.
func (s MatchSet) Len() int {
	return len(s.groups)
}

// Group returns a copy of the values captured by group i, or nil when i is
// out of range.
func (s MatchSet) Group(i int) []string {
	if i < 0 || i >= len(s.groups) {
		return nil
	}
	return slices.Clone(s.groups[i])
}

// Get returns the value at index within group, and whether it exists.
func (s MatchSet) Get(group, index int) (string, bool) {
	if group < 0 || group >= len(s.groups) {
		return "", false
	}
	values := s.groups[group]
	if index < 0 || index >= len(values) {
		return "", false
	}
	return values[index], true
}

// Value returns the first capture of the whole match.
func (s MatchSet) Value() string {
	v, _ := s.Get(0, 0)
	return v
}

// Named returns the first capture of the named group, if any.
func (s MatchSet) Named(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i, n := range s.names {
		if n == name {
			return s.Get(i, 0)
		}
	}
	return "", false
}

// Vars returns all named groups that captured a value.
func (s MatchSet) Vars() map[string]string {
	vars := make(map[string]string)
	for i, name := range s.names {
		if name == "" {
			continue
		}
		if v, ok := s.Get(i, 0); ok {
			vars[name] = v
		}
	}
	return vars
}
