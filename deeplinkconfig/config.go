package deeplinkconfig

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/deeplinks/deeplink"
)

// ErrUnknownBuilder is returned when a rule names a builder that was not
// registered.
var ErrUnknownBuilder = errors.New("deeplinkconfig: unknown builder")

// Config is a rule file.
type Config struct {
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig declares one parsing rule.
type RuleConfig struct {
	Name      string         `yaml:"name"`
	Scheme    *MatcherConfig `yaml:"scheme,omitempty"`
	Authority *MatcherConfig `yaml:"authority,omitempty"`
	Path      *MatcherConfig `yaml:"path,omitempty"`
	Build     string         `yaml:"build"`
}

// MatcherConfig declares a component matcher. Exactly one field is set.
type MatcherConfig struct {
	Exact    *string `yaml:"exact,omitempty"`
	Pattern  string  `yaml:"pattern,omitempty"`
	Template string  `yaml:"template,omitempty"`
}

// Builders maps the build names used in rule files to builder functions.
type Builders map[string]deeplink.BuilderFunc

// RuleAdder is implemented by *deeplink.Parser.
type RuleAdder interface {
	AddRule(name string) *deeplink.Rule
}

// UnmarshalYAML accepts a plain scalar as an exact value, or a mapping.
func (m *MatcherConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		v := value.Value
		*m = MatcherConfig{Exact: &v}
		return nil
	case yaml.MappingNode:
		var out MatcherConfig
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: matcher field %q must be a string", val.Line, key.Value)
			}
			switch key.Value {
			case "exact":
				v := val.Value
				out.Exact = &v
			case "pattern":
				out.Pattern = val.Value
			case "template":
				out.Template = val.Value
			default:
				return fmt.Errorf("line %d: unknown matcher field %q", key.Line, key.Value)
			}
		}
		*m = out
		return nil
	default:
		return fmt.Errorf("line %d: matcher must be a string or a mapping", value.Line)
	}
}

// Validate checks the structure of the file without compiling patterns.
func (c *Config) Validate() error {
	var errs []error
	for i, rule := range c.Rules {
		if err := rule.validate(); err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i, rule.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (r RuleConfig) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Build) == "" {
		return errors.New("build is required")
	}
	components := []struct {
		name string
		m    *MatcherConfig
	}{
		{"scheme", r.Scheme},
		{"authority", r.Authority},
		{"path", r.Path},
	}
	for _, c := range components {
		if c.m == nil {
			continue
		}
		if err := c.m.validate(); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

func (m *MatcherConfig) validate() error {
	set := 0
	if m.Exact != nil {
		set++
	}
	if m.Pattern != "" {
		set++
	}
	if m.Template != "" {
		set++
	}
	if set != 1 {
		return errors.New("exactly one of exact, pattern or template must be set")
	}
	return nil
}

// Apply validates the file and appends its rules to p in file order. No
// rule is added unless every rule names a registered builder; pattern and
// template errors of individual rules are returned joined.
func (c *Config) Apply(p RuleAdder, builders Builders) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for i, rule := range c.Rules {
		if builders[rule.Build] == nil {
			return fmt.Errorf("rule %d (%s): %w %q", i, rule.Name, ErrUnknownBuilder, rule.Build)
		}
	}

	var errs []error
	for _, rc := range c.Rules {
		rule := p.AddRule(rc.Name)
		rule.BuildingAs(builders[rc.Build])

		components := []struct {
			name     string
			m        *MatcherConfig
			exact    func(deeplink.Matcher) *deeplink.Rule
			pattern  func(string) *deeplink.Rule
			template func(string) *deeplink.Rule
		}{
			{"scheme", rc.Scheme, rule.MatchingScheme, rule.MatchingSchemePattern, nil},
			{"authority", rc.Authority, rule.MatchingAuthority, rule.MatchingAuthorityPattern, nil},
			{"path", rc.Path, rule.MatchingPath, rule.MatchingPathPattern, rule.MatchingPathTemplate},
		}
		for _, c := range components {
			if c.m == nil {
				continue
			}
			if err := c.m.apply(c.exact, c.pattern, c.template); err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %s: %w", rc.Name, c.name, err))
			}
		}

		if err := rule.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// apply configures one component. Templates on components without a
// template setter are compiled here and set as a matcher.
func (m *MatcherConfig) apply(exact func(deeplink.Matcher) *deeplink.Rule, pattern, template func(string) *deeplink.Rule) error {
	switch {
	case m.Exact != nil:
		exact(deeplink.Exact(*m.Exact))
	case m.Pattern != "":
		pattern(m.Pattern)
	case template != nil:
		template(m.Template)
	default:
		t, err := deeplink.ParseTemplate(m.Template)
		if err != nil {
			// An unset matcher keeps the rule inert.
			exact(deeplink.Matcher{})
			return err
		}
		exact(t.Matcher())
	}
	return nil
}
