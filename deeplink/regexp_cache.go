package deeplink

import (
	"regexp"
	"sync"
)

// patternCache holds compiled patterns keyed by their source. Rules are
// declared once at startup, so the cache is bounded by the rule set.
var patternCache sync.Map

// compilePattern returns the cached *regexp.Regexp for expr, compiling it on
// first use. An empty expression is rejected with ErrEmptyPattern.
func compilePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}

	if v, ok := patternCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(expr, re)

	return actual.(*regexp.Regexp), nil
}
