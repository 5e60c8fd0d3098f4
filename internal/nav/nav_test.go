package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalisesPaths(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"/highlights", "/highlights/", "highlights", "/highlights?x=1", "/highlights#top"} {
		r, ok := Lookup(p)
		require.True(t, ok, p)
		assert.Equal(t, "highlights", r.Key)
	}
	_, ok := Lookup("/nope")
	assert.False(t, ok)

	_, err := Find("/nope")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestRouteTableIsUnique(t *testing.T) {
	t.Parallel()

	paths := map[string]bool{}
	keys := map[string]bool{}
	for _, r := range Routes {
		assert.False(t, paths[r.Path], "duplicate path %s", r.Path)
		assert.False(t, keys[r.Key], "duplicate key %s", r.Key)
		paths[r.Path] = true
		keys[r.Key] = true
		assert.Equal(t, r.Path, NormalizePath(r.Path))
	}
	assert.Len(t, Paths(), len(Routes))
}

func TestByKey(t *testing.T) {
	t.Parallel()

	r, ok := ByKey("agAcademy")
	require.True(t, ok)
	assert.Equal(t, "/ag-academy", r.Path)
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Location{Pathname: "/", Hash: "#about"}, ParseLocation("/#about"))
	assert.Equal(t, Location{Pathname: "/highlights", Search: "?a=1", Hash: "#x"}, ParseLocation("/highlights?a=1#x"))
	assert.Equal(t, Location{Pathname: "/"}, ParseLocation(""))
	assert.Equal(t, Location{Pathname: "/"}, ParseLocation("/#"))
	assert.Equal(t, "/highlights?a=1", ParseLocation("/highlights?a=1#x").PathAndQuery())

	u, err := url.Parse("https://site.test/ag-academy?ref=nav#top")
	require.NoError(t, err)
	loc := FromURL(u)
	assert.Equal(t, "/ag-academy?ref=nav#top", loc.String())
}

func TestBuildActiveState(t *testing.T) {
	t.Parallel()

	items := Build(Location{Pathname: "/highlights/kaggle-achievements"})
	require.Len(t, items, len(Main))

	var caseStudies RenderedItem
	for _, it := range items {
		if it.LabelKey == "nav.case_studies" {
			caseStudies = it
		}
		if it.LabelKey == "nav.blogs" {
			assert.True(t, it.External)
			assert.False(t, it.Active)
		}
	}
	assert.True(t, caseStudies.Active)
	require.Len(t, caseStudies.Children, 2)
	assert.True(t, caseStudies.Children[1].Active)

	home := Build(Location{Pathname: "/", Hash: "#experience"})
	assert.Equal(t, "/#about", home[0].Href)
	assert.False(t, home[0].Active)
	assert.True(t, home[1].Active)
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/highlights/bees-health-detection")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "nav.home", crumbs[0].LabelKey)
	assert.Equal(t, "nav.highlights_overview", crumbs[1].LabelKey)
	assert.Equal(t, "Bees Health Detection", crumbs[2].Label)
	assert.True(t, crumbs[2].Active)

	root := Breadcrumbs("")
	require.Len(t, root, 1)
	assert.True(t, root[0].Active)
}
