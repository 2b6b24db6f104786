package deeplink

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// defaultVarPattern is used for {name} variables without a pattern.
const defaultVarPattern = "[^/]+"

// groupName is the set of names accepted as template variables.
var groupName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Template is a component template with {name} or {name:pattern}
// variables, for example "/watch/{id:slug}". It compiles to an anchored
// pattern with one named group per variable and can be expanded back into
// a string from variable values.
type Template struct {
	template string
	regexp   *regexp.Regexp
	reverse  string
	varsN    []string
	varsR    []valueChecker
}

// ParseTemplate compiles tpl. Variable patterns may be raw regular
// expressions or one of the macros uuid, int, float, slug, alpha, alphanum,
// date, hex and domain.
func ParseTemplate(tpl string) (*Template, error) {
	if tpl == "" {
		return nil, ErrEmptyPattern
	}

	idxs, err := braceIndices(tpl)
	if err != nil {
		return nil, err
	}

	var (
		pattern bytes.Buffer
		reverse bytes.Buffer
		varsN   []string
		varsR   []valueChecker
		end     int
	)

	pattern.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		raw := tpl[end:idxs[i]]
		end = idxs[i+1]

		parts := strings.SplitN(tpl[idxs[i]+1:end-1], ":", 2)
		name := parts[0]
		patt := defaultVarPattern
		var varR valueChecker
		if len(parts) == 2 {
			patt, varR = lookupMacro(parts[1])
		}

		if name == "" {
			return nil, fmt.Errorf("deeplink: missing name in %q from %q", tpl[idxs[i]:end], tpl)
		}
		if !groupName.MatchString(name) {
			return nil, fmt.Errorf("deeplink: invalid variable name %q in %q", name, tpl)
		}

		fmt.Fprintf(&pattern, "%s(?P<%s>%s)", regexp.QuoteMeta(raw), name, patt)
		reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))
		reverse.WriteString("%s")

		if varR == nil {
			re, err := compilePattern(fmt.Sprintf("^%s$", patt))
			if err != nil {
				return nil, fmt.Errorf("deeplink: invalid pattern %q in variable %q: %w", patt, name, err)
			}
			varR = re
		}

		varsN = append(varsN, name)
		varsR = append(varsR, varR)
	}

	raw := tpl[end:]
	pattern.WriteString(regexp.QuoteMeta(raw))
	pattern.WriteByte('$')
	reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))

	if err := checkDuplicateVars(varsN); err != nil {
		return nil, err
	}

	re, err := compilePattern(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("deeplink: invalid template %q: %w", tpl, err)
	}

	return &Template{
		template: tpl,
		regexp:   re,
		reverse:  reverse.String(),
		varsN:    varsN,
		varsR:    varsR,
	}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(tpl string) *Template {
	t, err := ParseTemplate(tpl)
	if err != nil {
		panic(err)
	}
	return t
}

// Matcher returns a pattern Matcher for the template. Variables are exposed
// through MatchSet.Named and MatchSet.Vars.
func (t *Template) Matcher() Matcher {
	return Pattern(t.regexp)
}

// String returns the original template.
func (t *Template) String() string {
	return t.template
}

// Regexp returns the compiled pattern source.
func (t *Template) Regexp() string {
	return t.regexp.String()
}

// VarNames returns the variable names in template order.
func (t *Template) VarNames() []string {
	names := make([]string, len(t.varsN))
	copy(names, t.varsN)
	return names
}

// Expand builds a string from the template and a sequence of key/value
// pairs. Every variable must be present and must satisfy its pattern.
func (t *Template) Expand(pairs ...string) (string, error) {
	values, err := mapFromPairs(pairs...)
	if err != nil {
		return "", err
	}

	args := make([]any, len(t.varsN))
	for i, name := range t.varsN {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("deeplink: missing template variable %q", name)
		}
		if !t.varsR[i].MatchString(v) {
			return "", fmt.Errorf("deeplink: variable %q doesn't match, expected %q", name, t.varsR[i].String())
		}
		args[i] = v
	}

	return fmt.Sprintf(t.reverse, args...), nil
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("deeplink: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("deeplink: unbalanced braces in %q", s)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("deeplink: duplicated template variable %q", v)
		}
		seen[v] = true
	}
	return nil
}

// mapFromPairs converts variadic key/value parameters to a map.
func mapFromPairs(pairs ...string) (map[string]string, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("deeplink: number of parameters must be multiple of 2, got %v", pairs)
	}
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	return m, nil
}
