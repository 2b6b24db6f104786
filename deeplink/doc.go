// Package deeplink routes incoming URIs to application-defined deep link
// values and serializes those values back to URI strings.
//
// Matching is declarative and ordered. Each rule constrains the scheme,
// the authority (lowercased host, plus the port unless it is the scheme's
// default) and the path of a URI with an exact value or a regular
// expression, and builds a deep link from the captures and the decoded
// query string. The first rule that matches wins.
//
// # Rules
//
// Create a router and register rules:
//
//	r := deeplink.NewRouter()
//	r.AddParsingRule("youtube").
//		MatchingSchemePattern(`^https?$`).
//		MatchingAuthorityPattern(`^(www\.)?youtube\.com$`).
//		BuildingAs(func(c *deeplink.MatchContext) (deeplink.DeepLink, error) {
//			return VideoLink{Path: c.Path.Value()}, nil
//		})
//
// Components a rule does not constrain match anything. Exact values are
// set with Exact, patterns with Compile, MustCompile or Pattern:
//
//	r.AddParsingRule("ftp").
//		MatchingScheme(deeplink.Exact("ftp")).
//		MatchingPath(deeplink.MustCompile(`^/files/(.+)$`))
//
// # Captures
//
// A successful matcher yields a MatchSet. An exact match holds one group
// with the whole value. A pattern match holds one group per capture group,
// group 0 being the whole match:
//
//	c.Path.Value()      // whole path
//	c.Path.Get(1, 0)    // first capture group
//	c.Path.Named("id")  // named group (?P<id>...)
//
// # Templates
//
// Paths can also be matched with templates using {name} and {name:pattern}
// variables, where pattern is a regular expression or a macro:
//
//	r.AddParsingRule("user").
//		MatchingPathTemplate("/users/{id:uuid}")
//
// Available macros:
//
//	uuid     - RFC 4122 UUID
//	int      - unsigned integer
//	float    - decimal number
//	slug     - URL-safe slug
//	alpha    - alphabetic characters
//	alphanum - alphanumeric characters
//	date     - ISO 8601 date
//	hex      - hexadecimal string
//	domain   - domain name per RFC 1123
//
// A Template can be expanded back into a string, which makes it a natural
// building block for serializers.
//
// # Query Strings
//
// The query string is decoded without percent-decoding. Repeated names
// accumulate values in order, and a segment without '=' has an empty
// value. A URI without a query and a URI with an empty query ("?") both
// yield no values, but MatchContext.HasQuery tells them apart.
//
// # Dispatch and Export
//
// Handlers and serializers are registered for concrete Go types:
//
//	r.OnDeepLink(deeplink.NewHandler(func(v VideoLink) { ... }))
//	r.AddExportRule(deeplink.NewSerializer(func(v VideoLink) string {
//		return "https://www.youtube.com" + v.Path
//	}))
//
// ProcessDeepLink runs at most one handler, the first one registered for
// the dynamic type of the parsed link. ExportDeepLink returns "about:blank"
// for links no serializer accepts.
//
// # Diagnostics
//
// Routing never panics. Misconfigured rules, failing builders and panicking
// serializers or handlers are contained and reported to the sink set with
// WithDiagnostics. URIs that match no rule are a normal outcome and are
// not reported.
package deeplink
