package deeplink

import (
	"regexp"
	"sort"
)

// valueChecker validates one template variable value on expansion.
// *regexp.Regexp satisfies it.
type valueChecker interface {
	MatchString(string) bool
	String() string
}

// boundedChecker also caps the value length, for macros whose limit a
// regular expression cannot express cheaply.
type boundedChecker struct {
	*regexp.Regexp
	max int
}

func (c boundedChecker) MatchString(s string) bool {
	return len(s) <= c.max && c.Regexp.MatchString(s)
}

type macroDef struct {
	name    string
	pattern string
	max     int
}

var macroDefs = []macroDef{
	{name: "uuid", pattern: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`},
	{name: "int", pattern: `[0-9]+`},
	{name: "float", pattern: `[0-9]*\.?[0-9]+`},
	{name: "slug", pattern: `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`},
	{name: "alpha", pattern: `[a-zA-Z]+`},
	{name: "alphanum", pattern: `[a-zA-Z0-9]+`},
	{name: "date", pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}`},
	{name: "hex", pattern: `[0-9a-fA-F]+`},
	// RFC 1123 host names.
	{name: "domain", pattern: `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`, max: 253},
}

type macro struct {
	pattern string
	check   valueChecker
}

var macros = func() map[string]macro {
	m := make(map[string]macro, len(macroDefs))
	for _, def := range macroDefs {
		var check valueChecker = regexp.MustCompile("^" + def.pattern + "$")
		if def.max > 0 {
			check = boundedChecker{Regexp: check.(*regexp.Regexp), max: def.max}
		}
		m[def.name] = macro{pattern: def.pattern, check: check}
	}
	return m
}()

// MacroNames returns the names usable as {name:macro} in templates.
func MacroNames() []string {
	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupMacro resolves a variable pattern. Anything that is not a macro
// name is a raw regular expression and comes back with a nil checker.
func lookupMacro(expr string) (string, valueChecker) {
	if m, ok := macros[expr]; ok {
		return m.pattern, m.check
	}
	return expr, nil
}
