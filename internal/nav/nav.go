// Package nav holds the static route table, the main menu, and the scroll
// behaviour that runs on every navigation.
package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item. Exactly one of Path or Href is set;
// Href marks an external link.
type Item struct {
	Path     string // e.g. "/highlights"
	Hash     string // e.g. "#about", only with Path
	Href     string // external URL
	LabelKey string // i18n key, e.g. "nav.about"
	Children []Item
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	External bool
	Active   bool
	Children []RenderedItem
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Hash: "#about", LabelKey: "nav.about"},
	{Path: "/", Hash: "#experience", LabelKey: "nav.experience"},
	{Path: "/highlights", LabelKey: "nav.case_studies", Children: []Item{
		{Path: "/highlights", LabelKey: "nav.highlights_overview"},
		{Path: "/highlights/kaggle-achievements", LabelKey: "nav.kaggle_achievements"},
	}},
	{Path: "/ag-academy", LabelKey: "nav.youtube"},
	{Path: "/", Hash: "#credentials", LabelKey: "nav.credentials"},
	{Href: "https://blog.ambarishganguly.com", LabelKey: "nav.blogs"},
}

// Build renders navigation items with active state given the current location.
// Section links (with a hash) are active only when the hash matches.
func Build(current Location) []RenderedItem {
	return buildItems(Main, current)
}

func buildItems(items []Item, current Location) []RenderedItem {
	if current.Pathname == "" {
		current.Pathname = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		ri := RenderedItem{LabelKey: it.LabelKey}
		switch {
		case it.Href != "":
			ri.Href = it.Href
			ri.External = true
		case it.Hash != "":
			ri.Href = it.Path + it.Hash
			ri.Active = current.Pathname == it.Path && current.Hash == it.Hash
		default:
			ri.Href = it.Path
			ri.Active = isActive(it.Path, current.Pathname)
		}
		if len(it.Children) > 0 {
			ri.Children = buildItems(it.Children, current)
		}
		out = append(out, ri)
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/highlights" or "/highlights/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - Known routes use their label key
// - Unknown segments use a prettified segment label
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if r, ok := Lookup(href); ok {
			c.LabelKey = r.LabelKey
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	words := strings.FieldsFunc(seg, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r := []rune(w)
		r[0] = toUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
