package nav

import (
	"errors"
	"strings"
)

// ErrUnknownRoute reports a path that is not in the route table.
var ErrUnknownRoute = errors.New("nav: unknown route")

// Route maps one URL path to one page.
type Route struct {
	Path     string
	Key      string   // page key, also the content page name
	LabelKey string   // i18n key used for breadcrumbs
	Anchors  []string // element ids the page always renders
}

// sharedAnchors are rendered by the layout on every page.
var sharedAnchors = []string{"main-content"}

// Routes is the static route table.
var Routes = []Route{
	{Path: "/", Key: "home", LabelKey: "nav.home", Anchors: []string{"hero", "about", "experience", "credentials"}},
	{Path: "/highlights", Key: "highlights", LabelKey: "nav.highlights_overview"},
	{Path: "/highlights/random-walk-of-the-penguins", Key: "highlightRandomWalk"},
	{Path: "/highlights/bees-health-detection", Key: "highlightBees"},
	{Path: "/highlights/future-ready-champions", Key: "highlightFutureReady"},
	{Path: "/highlights/azure-blogathon-champion", Key: "highlightAzureBlogathon"},
	{Path: "/highlights/azure-blogathon-cassava", Key: "highlightAzureBlogathonCassava"},
	{Path: "/highlights/microsoft-azure", Key: "highlightMicrosoftAzure"},
	{Path: "/highlights/dst-geospatial-hackathon", Key: "highlightDSTGeospatial"},
	{Path: "/highlights/donors-choose-recommendation", Key: "highlightDonorsChoose"},
	{Path: "/highlights/kiva-crowdfunding-analysis", Key: "highlightKiva"},
	{Path: "/highlights/african-conflicts-visualisation", Key: "highlightAfricanConflicts"},
	{Path: "/highlights/cpe-equity-visualisation", Key: "highlightCPE"},
	{Path: "/highlights/kaggle-achievements", Key: "kaggleAchievements", LabelKey: "nav.kaggle_achievements"},
	{Path: "/ag-academy", Key: "agAcademy", LabelKey: "nav.youtube"},
}

var routeIndex = func() map[string]Route {
	m := make(map[string]Route, len(Routes))
	for _, r := range Routes {
		m[r.Path] = r
	}
	return m
}()

// NormalizePath strips trailing slashes and guarantees a leading slash.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = "/" + strings.Trim(p, "/")
	return p
}

// Lookup finds the route for p.
func Lookup(p string) (Route, bool) {
	r, ok := routeIndex[NormalizePath(p)]
	return r, ok
}

// Find is Lookup returning ErrUnknownRoute for misses.
func Find(p string) (Route, error) {
	r, ok := Lookup(p)
	if !ok {
		return Route{}, ErrUnknownRoute
	}
	return r, nil
}

// ByKey finds the route for a page key.
func ByKey(key string) (Route, bool) {
	for _, r := range Routes {
		if r.Key == key {
			return r, true
		}
	}
	return Route{}, false
}

// Paths lists every routed path in table order.
func Paths() []string {
	out := make([]string, 0, len(Routes))
	for _, r := range Routes {
		out = append(out, r.Path)
	}
	return out
}

// AllAnchors returns the route's anchors plus the layout-wide ones.
func (r Route) AllAnchors() []string {
	out := make([]string, 0, len(r.Anchors)+len(sharedAnchors))
	out = append(out, r.Anchors...)
	return append(out, sharedAnchors...)
}
