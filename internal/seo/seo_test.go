package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestAbsolute(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://site.test")
	cases := map[string]string{
		"https://example.com/x": "https://example.com/x",
		"HTTP://example.com/y":  "HTTP://example.com/y",
		"/images/a.jpg":         "https://site.test/images/a.jpg",
		"images/a.jpg":          "https://site.test/images/a.jpg",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, r.Absolute(in), "input %q", in)
	}
}

func TestAbsoluteStripsTrailingSlashesFromBase(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://site.test///")
	assert.Equal(t, "https://site.test/highlights", r.Absolute("/highlights"))
}

func TestSiteURLFromEnv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FallbackSiteURL, SiteURLFromEnv(mapLookup(nil)))
	assert.Equal(t, FallbackSiteURL, SiteURLFromEnv(mapLookup(map[string]string{"PORTFOLIO_SITE_URL": "   "})))
	assert.Equal(t, "https://vite.test", SiteURLFromEnv(mapLookup(map[string]string{"VITE_SITE_URL": "https://vite.test/"})))
	assert.Equal(t, "https://primary.test", SiteURLFromEnv(mapLookup(map[string]string{
		"PORTFOLIO_SITE_URL": "https://primary.test",
		"VITE_SITE_URL":      "https://vite.test",
	})))
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	head := NewResolver("https://site.test").Resolve(PageConfig{}, "/somewhere?x=1")

	assert.Equal(t, DefaultTitle, head.Title)
	assert.Equal(t, DefaultDescription, head.Content("name", "description"))
	assert.Empty(t, head.Content("name", "keywords"))
	assert.Equal(t, "index, follow", head.Content("name", "robots"))
	assert.Equal(t, SiteName, head.Content("name", "author"))
	assert.Equal(t, "website", head.Content("property", "og:type"))
	assert.Equal(t, "https://site.test/somewhere?x=1", head.Canonical)
	assert.Equal(t, head.Canonical, head.Content("property", "og:url"))
	assert.Equal(t, "https://site.test/images/AG.jpg", head.Content("property", "og:image"))
	assert.Equal(t, "Ambarish Ganguly Portfolio", head.Content("property", "og:site_name"))
	assert.Equal(t, "summary_large_image", head.Content("name", "twitter:card"))
	assert.Empty(t, head.StructuredData)
}

func TestResolveTitleAndKeywords(t *testing.T) {
	t.Parallel()

	head := NewResolver("https://site.test").Resolve(PageConfig{
		Title:    "Highlights",
		Keywords: Keywords{"a", "b", "c"},
	}, "/highlights")

	assert.Equal(t, "Highlights | Ambarish Ganguly", head.Title)
	assert.Equal(t, head.Title, head.Content("property", "og:title"))
	assert.Equal(t, head.Title, head.Content("name", "twitter:title"))
	assert.Equal(t, "a, b, c", head.Content("name", "keywords"))
}

func TestResolveCanonicalPrecedence(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://site.test")
	assert.Equal(t, "https://site.test/canon", r.Resolve(PageConfig{Canonical: "/canon", Pathname: "/path"}, "/req").Canonical)
	assert.Equal(t, "https://site.test/path", r.Resolve(PageConfig{Pathname: "path"}, "/req").Canonical)
	assert.Equal(t, "https://other.test/c", r.Resolve(PageConfig{Canonical: "https://other.test/c"}, "/req").Canonical)
}

func TestResolveMetaOrderIsStable(t *testing.T) {
	t.Parallel()

	head := Resolve(PageConfig{Title: "x"}, "/")
	keys := make([]string, 0, len(head.Meta))
	for _, m := range head.Meta {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{
		"description", "keywords", "robots", "author",
		"og:title", "og:description", "og:type", "og:url", "og:image", "og:site_name",
		"twitter:card", "twitter:title", "twitter:description", "twitter:image", "twitter:url",
	}, keys)
}

func TestStructuredDataNormalisation(t *testing.T) {
	t.Parallel()

	var single StructuredData
	require.NoError(t, json.Unmarshal([]byte(`{"@type":"WebSite"}`), &single))
	assert.Len(t, single.Payloads(), 1)

	var list StructuredData
	require.NoError(t, json.Unmarshal([]byte(`[{"@type":"WebSite"},null,{"@type":"Person"}]`), &list))
	assert.Len(t, list.Payloads(), 2)

	var none StructuredData
	require.NoError(t, json.Unmarshal([]byte(`null`), &none))
	assert.Empty(t, none.Payloads())

	var typedNil map[string]any
	assert.Empty(t, StructuredData{typedNil}.Payloads())
}

func TestKeywordsDecoding(t *testing.T) {
	t.Parallel()

	var fromString Keywords
	require.NoError(t, json.Unmarshal([]byte(`"one, two"`), &fromString))
	assert.Equal(t, "one, two", fromString.String())

	var fromList Keywords
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &fromList))
	assert.Equal(t, "a, b", fromList.String())

	var cfg PageConfig
	require.NoError(t, yaml.Unmarshal([]byte("keywords: [x, y]\nstructured_data:\n  \"@type\": Article\n"), &cfg))
	assert.Equal(t, "x, y", cfg.Keywords.String())
	require.Len(t, cfg.StructuredData.Payloads(), 1)
	assert.JSONEq(t, `{"@type":"Article"}`, string(cfg.StructuredData.Payloads()[0]))

	require.NoError(t, yaml.Unmarshal([]byte("keywords: solo\n"), &cfg))
	assert.Equal(t, "solo", cfg.Keywords.String())
}

func TestConfigKeyChangesWithContent(t *testing.T) {
	t.Parallel()

	a := PageConfig{Title: "A"}
	b := PageConfig{Title: "B"}
	assert.Equal(t, a.Key(), PageConfig{Title: "A"}.Key())
	assert.NotEqual(t, a.Key(), b.Key())
}
