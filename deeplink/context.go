package deeplink

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// MatchContext is what a rule's builder receives after all three matchers
// accepted a URI. It lives for a single match attempt.
type MatchContext struct {
	// URI is the URI being matched.
	URI *url.URL

	// Scheme holds the captures of the scheme matcher.
	Scheme MatchSet

	// Authority holds the captures of the authority matcher.
	Authority MatchSet

	// Path holds the captures of the path matcher.
	Path MatchSet

	// Query is the decoded query string.
	Query Query
}

// HasQuery reports whether the URI carried a query component, even an
// empty one.
func (c *MatchContext) HasQuery() bool {
	return c.Query.Present()
}

// QueryValue returns the first value of the named query parameter.
func (c *MatchContext) QueryValue(name string) (string, bool) {
	return c.Query.Get(name)
}

// QueryValueAt returns the value of the named query parameter at index.
func (c *MatchContext) QueryValueAt(name string, index int) (string, bool) {
	return c.Query.GetAt(name, index)
}

// QueryValues returns every value of the named query parameter.
func (c *MatchContext) QueryValues(name string) []string {
	return c.Query.Values(name)
}

// Domain returns the registrable domain (eTLD+1) of the URI host, for
// example "youtube.com" for "m.youtube.com:443".
func (c *MatchContext) Domain() (string, error) {
	if c.URI == nil {
		return "", fmt.Errorf("deeplink: no uri to take a domain from")
	}
	host := strings.TrimSuffix(c.URI.Hostname(), ".")
	if host == "" {
		return "", fmt.Errorf("deeplink: uri %q has no host", c.URI.String())
	}
	return publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
}

// uriScheme returns the scheme component matched by rules.
func uriScheme(u *url.URL) string {
	return u.Scheme
}

// defaultPorts are omitted from the matched authority.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// uriAuthority returns the lowercased host and the port, unless it is the
// scheme's default. Userinfo is not part of it.
func uriAuthority(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" || defaultPorts[u.Scheme] == port {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}

// uriPath returns the percent-encoded path as written. Opaque URIs such as
// "mailto:user@example.com" match on their opaque part, and hierarchical
// URIs with an authority but no path match "/".
func uriPath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	p := u.EscapedPath()
	if p == "" && u.Host != "" {
		return "/"
	}
	return p
}

// uriQuery decodes the query component, keeping "absent" and "empty" apart.
func uriQuery(u *url.URL) Query {
	if u.RawQuery == "" && !u.ForceQuery {
		return NoQuery()
	}
	return DecodeQuery(u.RawQuery)
}

// ParseURI parses raw into an absolute URI suitable for routing.
func ParseURI(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("deeplink: invalid uri %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrNotAbsolute, raw)
	}
	return u, nil
}
