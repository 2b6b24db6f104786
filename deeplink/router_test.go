package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSampleRouter mirrors a typical application setup: a specific YouTube
// rule before a general web rule, plus an FTP rule.
func newSampleRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()

	r := NewRouter(opts...)
	r.AddParsingRule("youtube").
		MatchingSchemePattern(`^https?$`).
		MatchingAuthorityPattern(`^(www\.)?youtube\.com$`).
		BuildingAs(buildVideo)
	r.AddParsingRule("http").
		MatchingSchemePattern(`^https?$`).
		BuildingAs(func(c *MatchContext) (DeepLink, error) {
			return webLink{Authority: c.Authority.Value(), Path: c.Path.Value()}, nil
		})
	r.AddParsingRule("ftp").
		MatchingScheme(Exact("ftp")).
		BuildingAs(func(c *MatchContext) (DeepLink, error) {
			return fileLink{Authority: c.Authority.Value(), Path: c.Path.Value()}, nil
		})
	require.NoError(t, r.Err())

	require.NoError(t, r.AddExportRule(NewSerializer(func(v videoLink) string {
		return "https://www.youtube.com" + v.Path
	})))
	require.NoError(t, r.AddExportRule(NewSerializer(func(v webLink) string {
		return "https://" + v.Authority + v.Path
	})))
	require.NoError(t, r.AddExportRule(NewSerializer(func(v fileLink) string {
		return "ftp://" + v.Authority + v.Path
	})))

	return r
}

func TestRouterEndToEnd(t *testing.T) {
	r := NewRouter()
	r.AddParsingRule("youtube").
		MatchingSchemePattern(`^https?$`).
		MatchingAuthorityPattern(`^(www\.)?youtube\.com$`).
		BuildingAs(buildVideo)

	var videos []videoLink
	require.NoError(t, r.OnDeepLink(NewHandler(func(v videoLink) {
		videos = append(videos, v)
	})))

	assert.True(t, r.ProcessDeepLink(mustURL(t, "http://youtube.com/watch")))
	require.Len(t, videos, 1)
	assert.Equal(t, "/watch", videos[0].Path)

	assert.False(t, r.ProcessDeepLink(mustURL(t, "http://google.com/watch")))
	assert.Len(t, videos, 1)

	for _, raw := range []string{
		"HTTP://youtube.com/watch",
		"http://YouTube.com/watch",
		"http://youtube.com:80/watch",
		"https://WWW.YOUTUBE.COM:443/watch",
	} {
		assert.True(t, r.ProcessDeepLink(mustURL(t, raw)), raw)
	}
	assert.Len(t, videos, 5)

	assert.False(t, r.ProcessDeepLink(mustURL(t, "http://youtube.com:8080/watch")))
}

func TestRouterDispatch(t *testing.T) {
	r := newSampleRouter(t)

	var calls []string
	require.NoError(t, r.OnDeepLink(NewHandler(func(v videoLink) {
		calls = append(calls, "video:"+r.ExportDeepLink(v))
	})))
	require.NoError(t, r.OnDeepLink(NewHandler(func(v webLink) {
		calls = append(calls, "web:"+r.ExportDeepLink(v))
	})))

	tests := []struct {
		uri     string
		handled bool
		call    string
	}{
		{"http://youtube.com", true, "video:https://www.youtube.com/"},
		{"http://youtube.com/sample-path", true, "video:https://www.youtube.com/sample-path"},
		{"http://google.com/sample-path", true, "web:https://google.com/sample-path"},
		{"https://google.com/sample-path", true, "web:https://google.com/sample-path"},
		{"samba://google.com/sample-path", false, ""},
		// Parsed, but no handler accepts fileLink.
		{"ftp://google.com/sample-path", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			calls = nil
			handled := r.ProcessDeepLink(mustURL(t, tt.uri))
			assert.Equal(t, tt.handled, handled)
			if tt.handled {
				assert.Equal(t, []string{tt.call}, calls)
			} else {
				assert.Empty(t, calls)
			}
		})
	}
}

func TestRouterAtMostOneHandler(t *testing.T) {
	r := newSampleRouter(t)

	var calls []string
	require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) { calls = append(calls, "first") })))
	require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) { calls = append(calls, "second") })))

	assert.True(t, r.ProcessDeepLink(mustURL(t, "https://example.com/a")))
	assert.Equal(t, []string{"first"}, calls)
}

func TestRouterRejectsInvalidHandlers(t *testing.T) {
	r := NewRouter()

	assert.ErrorIs(t, r.OnDeepLink(NewHandler[videoLink](nil)), ErrNilFunc)
	assert.ErrorIs(t, r.OnDeepLink(NewHandler(func(linkWithString) {})), ErrAbstractVariant)
	assert.ErrorIs(t, r.OnDeepLink(NewHandler(func(DeepLink) {})), ErrAbstractVariant)
	assert.ErrorIs(t, r.OnDeepLink(Handler{}), ErrNilFunc)
	assert.ErrorIs(t, r.AddExportRule(NewSerializer[videoLink](nil)), ErrNilFunc)
}

func TestRouterRoundTrip(t *testing.T) {
	r := newSampleRouter(t)

	for _, raw := range []string{
		"https://www.youtube.com/watch",
		"https://google.com/search",
		"ftp://files.example.com/pub/readme.txt",
	} {
		t.Run(raw, func(t *testing.T) {
			link, ok := r.Parse(mustURL(t, raw))
			require.True(t, ok)
			assert.Equal(t, raw, r.ExportDeepLink(link))
		})
	}

	assert.Equal(t, BlankURI, r.ExportDeepLink(struct{}{}))
}

func TestRouterTemplateRoundTrip(t *testing.T) {
	type itemLink struct {
		ID string
	}

	tpl := MustParseTemplate("/items/{id:int}")

	r := NewRouter()
	r.AddParsingRule("item").
		MatchingScheme(Exact("app")).
		MatchingAuthority(Exact("shop")).
		MatchingPath(tpl.Matcher()).
		BuildingAs(func(c *MatchContext) (DeepLink, error) {
			id, _ := c.Path.Named("id")
			return itemLink{ID: id}, nil
		})
	require.NoError(t, r.AddExportRule(NewSerializer(func(v itemLink) string {
		p, err := tpl.Expand("id", v.ID)
		if err != nil {
			return BlankURI
		}
		return "app://shop" + p
	})))

	link, ok := r.Parse(mustURL(t, "app://shop/items/42"))
	require.True(t, ok)
	assert.Equal(t, itemLink{ID: "42"}, link)
	assert.Equal(t, "app://shop/items/42", r.ExportDeepLink(link))
	assert.Equal(t, BlankURI, r.ExportDeepLink(itemLink{ID: "x"}))
}

func TestRouterContainsHandlerPanics(t *testing.T) {
	c := &collector{}
	r := newSampleRouter(t, WithDiagnostics(c.sink))
	require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) {
		panic("handler bug")
	})))

	assert.NotPanics(t, func() {
		assert.True(t, r.ProcessDeepLink(mustURL(t, "https://example.com/")))
	})
	require.Len(t, c.diagnostics, 1)
	d := c.diagnostics[0]
	assert.Equal(t, DiagnosticHandlerFailed, d.Kind)
	assert.Equal(t, "http", d.Rule)
	assert.Equal(t, "https://example.com/", d.URI)
	assert.Equal(t, "deeplink.webLink", d.Variant)
}

func TestPanickingDiagnosticsSink(t *testing.T) {
	sink := WithDiagnostics(func(Diagnostic) { panic("sink bug") })

	t.Run("builder", func(t *testing.T) {
		rule := NewRule("panicking", sink).BuildingAs(func(*MatchContext) (DeepLink, error) {
			panic("builder bug")
		})
		assert.NotPanics(t, func() {
			_, ok := rule.Match(mustURL(t, "http://example.com/"))
			assert.False(t, ok)
		})
	})

	t.Run("incomplete rule", func(t *testing.T) {
		rule := NewRule("incomplete", sink)
		assert.NotPanics(t, func() {
			_, ok := rule.Match(mustURL(t, "http://example.com/"))
			assert.False(t, ok)
		})
	})

	t.Run("configuration", func(t *testing.T) {
		assert.NotPanics(t, func() {
			NewRule("bad", sink).MatchingSchemePattern("")
		})
	})

	t.Run("serializer and handler", func(t *testing.T) {
		r := newSampleRouter(t, sink)
		require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) { panic("handler bug") })))
		require.NoError(t, r.AddExportRule(NewSerializer(func(struct{ X int }) string { panic("serializer bug") })))

		assert.NotPanics(t, func() {
			assert.True(t, r.ProcessDeepLink(mustURL(t, "https://example.com/")))
			assert.Equal(t, BlankURI, r.ExportDeepLink(struct{ X int }{}))
		})
	})
}

func TestRouterUnmatchedIsSilent(t *testing.T) {
	c := &collector{}
	r := newSampleRouter(t, WithDiagnostics(c.sink))

	assert.False(t, r.ProcessDeepLink(mustURL(t, "samba://host/x")))
	assert.False(t, r.ProcessDeepLink(nil))
	assert.Empty(t, c.diagnostics)
}

func TestRouterMiddleware(t *testing.T) {
	r := newSampleRouter(t)

	var order []string
	r.Use(
		func(next HandlerFunc) HandlerFunc {
			return func(link DeepLink) {
				order = append(order, "outer")
				next(link)
			}
		},
		func(next HandlerFunc) HandlerFunc {
			return func(link DeepLink) {
				order = append(order, "inner")
				next(link)
			}
		},
	)
	require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) {
		order = append(order, "handler")
	})))

	r.ProcessDeepLink(mustURL(t, "https://example.com/"))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)

	order = nil
	r.ProcessDeepLink(mustURL(t, "samba://example.com/"))
	assert.Empty(t, order)
}

func TestRouterMiddlewareDropsLink(t *testing.T) {
	r := newSampleRouter(t)
	r.Use(func(HandlerFunc) HandlerFunc {
		return func(DeepLink) {}
	})

	ran := false
	require.NoError(t, r.OnDeepLink(NewHandler(func(webLink) { ran = true })))

	assert.True(t, r.ProcessDeepLink(mustURL(t, "https://example.com/")))
	assert.False(t, ran)
}

func TestRouterProcessDeepLinkString(t *testing.T) {
	r := newSampleRouter(t)

	var got []webLink
	require.NoError(t, r.OnDeepLink(NewHandler(func(v webLink) { got = append(got, v) })))

	handled, err := r.ProcessDeepLinkString("  https://example.com/a  ")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []webLink{{Authority: "example.com", Path: "/a"}}, got)

	_, err = r.ProcessDeepLinkString("/relative/only")
	assert.ErrorIs(t, err, ErrNotAbsolute)

	_, err = r.ProcessDeepLinkString("http://[::1")
	assert.Error(t, err)
}

func TestRouterErr(t *testing.T) {
	r := NewRouter()
	r.AddParsingRule("bad").MatchingPathPattern(`(`)
	assert.Error(t, r.Err())
	assert.Equal(t, 1, r.Parser().Len())
}
