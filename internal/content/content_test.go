package content

import (
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
)

func TestEveryRouteHasAPage(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	pages, err := store.Pages()
	require.NoError(t, err)
	require.Len(t, pages, len(nav.Routes))
	for i, p := range pages {
		assert.Equal(t, nav.Routes[i].Path, p.Path, p.Key)
		assert.NotEmpty(t, p.SEO.Title, p.Key)
		assert.NotEmpty(t, p.SEO.Description, p.Key)
		assert.False(t, p.UpdatedAt.IsZero(), p.Key)
	}
}

func TestHighlightsConfigListsCatalogHighlights(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)
	r := seo.NewResolver("https://example.com/")

	cfg, err := store.Config("highlights", r)
	require.NoError(t, err)
	assert.Equal(t, "Highlights", cfg.Title)
	assert.Equal(t, "awards, data science case studies, Microsoft showcase, NASA award", cfg.Keywords.String())

	payloads := cfg.StructuredData.Payloads()
	require.Len(t, payloads, 1)
	var doc struct {
		Type    string `json:"@type"`
		URL     string `json:"url"`
		HasPart []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			URL      string `json:"url"`
		} `json:"hasPart"`
	}
	require.NoError(t, json.Unmarshal(payloads[0], &doc))
	assert.Equal(t, "CollectionPage", doc.Type)
	assert.Equal(t, "https://example.com/highlights", doc.URL)
	require.Len(t, doc.HasPart, len(store.Catalog().Highlights))
	assert.Equal(t, 1, doc.HasPart[0].Position)
	assert.Equal(t, "https://example.com/highlights/random-walk-of-the-penguins", doc.HasPart[0].URL)
}

func TestHomeConfigBuildsWebsiteAndPerson(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	cfg, err := store.Config("home", seo.NewResolver("https://example.com"))
	require.NoError(t, err)
	payloads := cfg.StructuredData.Payloads()
	require.Len(t, payloads, 2)

	var site, person map[string]any
	require.NoError(t, json.Unmarshal(payloads[0], &site))
	require.NoError(t, json.Unmarshal(payloads[1], &person))
	assert.Equal(t, "WebSite", site["@type"])
	assert.Equal(t, "https://example.com", site["url"])
	assert.Equal(t, "en", site["inLanguage"])
	assert.Equal(t, "Person", person["@type"])
	assert.Equal(t, "Ambarish Ganguly", person["name"])
	assert.Equal(t, "https://example.com/images/AG.jpg", person["image"])
	assert.Contains(t, person["sameAs"], "mailto:ambarish.ganguly@gmail.com")
}

func TestArticleKeepsAbsoluteImage(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	cfg, err := store.Config("highlightBees", seo.NewResolver("https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, "article", cfg.Type)

	var article map[string]any
	require.NoError(t, json.Unmarshal(cfg.StructuredData.Payloads()[0], &article))
	assert.Equal(t, "https://www.youtube.com/watch?v=d92H_wPyrUE&t=16s", article["image"])
	assert.Equal(t, "https://example.com/highlights/bees-health-detection", article["mainEntityOfPage"])
	assert.Equal(t, map[string]any{"@type": "Person", "name": "Ambarish Ganguly"}, article["author"])
}

func TestPagesWithoutSchemaHaveNoStructuredData(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	cfg, err := store.Config("agAcademy", seo.NewResolver(""))
	require.NoError(t, err)
	assert.Nil(t, cfg.StructuredData)
	assert.Equal(t, "/ag-academy", cfg.Pathname)
}

func TestUnknownKeyIsNotFound(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	for _, key := range []string{"", "missing", "../home", "a/b"} {
		_, err := store.Page(key)
		assert.True(t, errors.Is(err, ErrNotFound), key)
	}
}

func TestOverrideTakesPrecedence(t *testing.T) {
	t.Parallel()

	override := fstest.MapFS{
		"home.md": {Data: []byte("---\nheading: Hello\nseo:\n  title: Welcome\n  keywords: one, two\n---\nBody *text*\n"), ModTime: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	store, err := NewStore(WithFS(override), WithCacheTTL(0))
	require.NoError(t, err)

	p, err := store.Page("home")
	require.NoError(t, err)
	assert.Equal(t, "Hello", p.Heading)
	assert.Equal(t, "/", p.Path)
	assert.Equal(t, "Welcome", p.SEO.Title)
	assert.Equal(t, "one, two", p.SEO.Keywords.String())
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), p.UpdatedAt)

	html, err := p.SummaryHTML()
	require.NoError(t, err)
	assert.Equal(t, "<p>Body <em>text</em></p>", html)

	other, err := store.Page("highlights")
	require.NoError(t, err)
	assert.Equal(t, "Highlights", other.Heading)
}

func TestParsePageRejectsBadFrontMatter(t *testing.T) {
	t.Parallel()

	_, err := parsePage("home", "---\nkey: other\n---\n", time.Time{})
	assert.Error(t, err)

	_, err = parsePage("home", "---\nschema:\n  - kind: recipe\n---\n", time.Time{})
	assert.Error(t, err)

	_, err = parsePage("home", "---\nseo: [\n---\n", time.Time{})
	assert.Error(t, err)

	p, err := parsePage("home", "no front matter", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "no front matter", p.Summary)
	assert.Equal(t, seo.SiteName, p.Heading)
}

func TestRenderMarkdownSanitises(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("hi <script>alert(1)</script> [x](https://example.com)")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, `rel="nofollow"`)

	empty, err := RenderMarkdown("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWithCatalogReplacesEmbedded(t *testing.T) {
	t.Parallel()

	custom := Catalog{Hero: Hero{Name: "Test Owner"}}
	store, err := NewStore(WithCatalog(custom))
	require.NoError(t, err)
	assert.Equal(t, "Test Owner", store.Catalog().Hero.Name)
	assert.Empty(t, store.Catalog().Highlights)
}

func TestNestedPagesCarryBreadcrumbList(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	require.NoError(t, err)

	cfg, err := store.Config("kaggleAchievements", seo.NewResolver("https://example.com"))
	require.NoError(t, err)
	payloads := cfg.StructuredData.Payloads()
	require.Len(t, payloads, 2)

	var list struct {
		Type  string `json:"@type"`
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Item     string `json:"item"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal(payloads[1], &list))
	assert.Equal(t, "BreadcrumbList", list.Type)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "Home", list.Items[0].Name)
	assert.Equal(t, "https://example.com/", list.Items[0].Item)
	assert.Equal(t, "Highlights", list.Items[1].Name)
	assert.Equal(t, 3, list.Items[2].Position)
	assert.Equal(t, "Kaggle Achievements", list.Items[2].Name)
	assert.Equal(t, "https://example.com/highlights/kaggle-achievements", list.Items[2].Item)
}
