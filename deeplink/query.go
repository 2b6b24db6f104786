package deeplink

import (
	"slices"
	"strings"
)

// Query is a decoded query string. Parameter names are case-sensitive,
// repeated names merge into one multi-valued entry, and values keep their
// encounter order. A Query also records whether a query string was
// supplied at all, so "no query" and "empty query" stay distinguishable.
type Query struct {
	values  map[string][]string
	keys    []string
	present bool
}

// NoQuery returns the Query of a URI without a query component.
func NoQuery() Query {
	return Query{}
}

// DecodeQuery decodes a supplied raw query string. Surrounding whitespace
// and one leading '?' are removed, the rest is split on '&' (empty
// segments are skipped) and each segment on its first '='. A segment
// without '=' yields an empty value. Values are not percent-decoded.
func DecodeQuery(raw string) Query {
	q := Query{present: true}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "?")

	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		q.add(key, value)
	}

	return q
}

func (q *Query) add(key, value string) {
	if q.values == nil {
		q.values = make(map[string][]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = append(q.values[key], value)
}

// Present reports whether a query string was supplied, even an empty one.
func (q Query) Present() bool {
	return q.present
}

// Len returns the number of distinct parameter names.
func (q Query) Len() int {
	return len(q.keys)
}

// Keys returns the parameter names in encounter order.
func (q Query) Keys() []string {
	return slices.Clone(q.keys)
}

// Has reports whether name was present in the query.
func (q Query) Has(name string) bool {
	_, ok := q.values[name]
	return ok
}

// Get returns the first value of name.
func (q Query) Get(name string) (string, bool) {
	return q.GetAt(name, 0)
}

// GetAt returns the value of name at index.
func (q Query) GetAt(name string, index int) (string, bool) {
	values := q.values[name]
	if index < 0 || index >= len(values) {
		return "", false
	}
	return values[index], true
}

// Values returns a copy of all values of name, or nil when absent.
func (q Query) Values(name string) []string {
	return slices.Clone(q.values[name])
}
