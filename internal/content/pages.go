// Package content loads the portfolio catalog and the per-route page definitions.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
)

// ErrNotFound reports a page key with no definition.
var ErrNotFound = errors.New("content: page not found")

//go:embed pages/*.md
var embeddedPages embed.FS

const defaultCacheTTL = 5 * time.Minute

// Page is one route's content: heading, markdown summary, and metadata.
type Page struct {
	Key       string
	Path      string
	Heading   string
	Summary   string // markdown
	SEO       seo.PageConfig
	Schema    []Schema
	UpdatedAt time.Time
}

// SummaryHTML renders the markdown summary.
func (p Page) SummaryHTML() (string, error) {
	return RenderMarkdown(p.Summary)
}

// Schema declares one structured-data block. Kind is website, person,
// collection, article or breadcrumbs.
type Schema struct {
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Headline    string `yaml:"headline"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Lang        string `yaml:"lang"`
	Parts       string `yaml:"parts"` // "highlights" lists the catalog highlights
}

type frontMatter struct {
	Key     string         `yaml:"key"`
	Heading string         `yaml:"heading"`
	Updated string         `yaml:"updated"`
	SEO     seo.PageConfig `yaml:"seo"`
	Schema  []Schema       `yaml:"schema"`
}

// Store serves pages from an optional directory, falling back to the embedded set.
type Store struct {
	catalog Catalog
	sources []fs.FS
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithDir consults dir before the embedded pages. Blank dir is ignored.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir = strings.TrimSpace(dir); dir != "" {
			s.sources = append([]fs.FS{os.DirFS(dir)}, s.sources...)
		}
	}
}

// WithFS consults fsys before the embedded pages. Pages live at <key>.md in its root.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) {
		if fsys != nil {
			s.sources = append([]fs.FS{fsys}, s.sources...)
		}
	}
}

// WithCacheTTL sets how long parsed pages are reused. Zero or less disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

// NewStore builds a Store over the embedded catalog and pages.
func NewStore(opts ...Option) (*Store, error) {
	pages, err := fs.Sub(embeddedPages, "pages")
	if err != nil {
		return nil, err
	}
	s := &Store{
		sources: []fs.FS{pages},
		ttl:     defaultCacheTTL,
		cache:   map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog.Hero.Name == "" {
		c, err := EmbeddedCatalog()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}
	return s, nil
}

// Catalog returns the store's catalog.
func (s *Store) Catalog() Catalog {
	return s.catalog
}

// Page returns the definition for a route key.
func (s *Store) Page(key string) (Page, error) {
	key = sanitizeKey(key)
	if key == "" {
		return Page{}, ErrNotFound
	}
	if p, ok := s.cached(key); ok {
		return p, nil
	}
	p, err := s.read(key)
	if err != nil {
		return Page{}, err
	}
	s.store(key, p)
	return p, nil
}

// Pages returns every routed page in route-table order.
func (s *Store) Pages() ([]Page, error) {
	out := make([]Page, 0, len(nav.Routes))
	for _, r := range nav.Routes {
		p, err := s.Page(r.Key)
		if err != nil {
			return nil, fmt.Errorf("content: page %s: %w", r.Key, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Config builds the route's PageConfig, expanding its schema declarations
// into structured data with absolute URLs from r.
func (s *Store) Config(key string, r seo.Resolver) (seo.PageConfig, error) {
	p, err := s.Page(key)
	if err != nil {
		return seo.PageConfig{}, err
	}
	cfg := p.SEO
	if cfg.Pathname == "" {
		cfg.Pathname = p.Path
	}
	data := append(seo.StructuredData(nil), cfg.StructuredData...)
	for _, sc := range p.Schema {
		data = append(data, s.buildSchema(sc, p, r))
	}
	if len(data) > 0 {
		cfg.StructuredData = data
	}
	return cfg, nil
}

// Anchors lists the element ids a page renders beyond its route's static anchors.
func (s *Store) Anchors(key string) []string {
	var areas []FocusArea
	switch key {
	case "kaggleAchievements":
		areas = s.catalog.KaggleAreas()
	case "highlightMicrosoftAzure":
		areas = s.catalog.AzureAreas()
	}
	ids := make([]string, 0, len(areas))
	for _, a := range areas {
		ids = append(ids, a.ID)
	}
	return ids
}

func (s *Store) buildSchema(sc Schema, p Page, r seo.Resolver) map[string]any {
	hero := s.catalog.Hero
	image := r.Absolute(firstNonEmpty(sc.Image, p.SEO.Image, seo.DefaultImage))
	switch sc.Kind {
	case "website":
		return seo.WebSite(firstNonEmpty(sc.Name, seo.OGSiteName), r.SiteURL(), sc.Description, firstNonEmpty(sc.Lang, "en"))
	case "person":
		return seo.Person(seo.PersonInfo{
			Name:     hero.Name,
			JobTitle: hero.Title,
			ImageURL: image,
			URL:      r.SiteURL(),
			SameAs:   hero.Contact.SameAs(),
			Address: &seo.PostalAddress{
				Locality: hero.Address.Locality,
				Region:   hero.Address.Region,
				Country:  hero.Address.Country,
			},
		})
	case "collection":
		var parts []seo.CreativeWork
		if sc.Parts == "highlights" {
			for _, h := range s.catalog.Highlights {
				parts = append(parts, seo.CreativeWork{Name: h.Title, URL: r.Absolute(h.Path)})
			}
		}
		return seo.CollectionPage(firstNonEmpty(sc.Name, p.Heading), r.Absolute(p.Path), sc.Description, parts)
	case "breadcrumbs":
		return seo.BreadcrumbList(s.breadcrumbItems(p, r))
	default: // article; kinds are validated on read
		return seo.Article(firstNonEmpty(sc.Headline, p.Heading), sc.Description, r.Absolute(p.Path), image, hero.Name)
	}
}

// breadcrumbItems names each crumb of p's path after the routed page's title,
// falling back to its heading and then to the path segment.
func (s *Store) breadcrumbItems(p Page, r seo.Resolver) []seo.BreadcrumbItem {
	crumbs := nav.Breadcrumbs(p.Path)
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if route, ok := nav.Lookup(c.Href); ok {
			if routed, err := s.Page(route.Key); err == nil {
				name = firstNonEmpty(routed.SEO.Title, routed.Heading, name)
			}
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: r.Absolute(c.Href)})
	}
	return items
}

func (s *Store) read(key string) (Page, error) {
	name := key + ".md"
	for _, src := range s.sources {
		data, err := fs.ReadFile(src, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Page{}, fmt.Errorf("content: read %s: %w", name, err)
		}
		var mod time.Time
		if info, err := fs.Stat(src, name); err == nil {
			mod = info.ModTime()
		}
		return parsePage(key, string(data), mod)
	}
	return Page{}, ErrNotFound
}

func parsePage(key, raw string, mod time.Time) (Page, error) {
	fm, body := splitFrontMatter(raw)
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", key, err)
		}
	}
	if front.Key != "" && front.Key != key {
		return Page{}, fmt.Errorf("content: %s.md declares key %q", key, front.Key)
	}
	for _, sc := range front.Schema {
		switch sc.Kind {
		case "website", "person", "collection", "article", "breadcrumbs":
		default:
			return Page{}, fmt.Errorf("content: %s.md: unknown schema kind %q", key, sc.Kind)
		}
	}
	p := Page{
		Key:       key,
		Heading:   strings.TrimSpace(front.Heading),
		Summary:   strings.TrimSpace(body),
		SEO:       front.SEO,
		Schema:    front.Schema,
		UpdatedAt: parseDate(front.Updated),
	}
	if route, ok := nav.ByKey(key); ok {
		p.Path = route.Path
	} else {
		p.Path = nav.NormalizePath(front.SEO.Pathname)
	}
	if p.Heading == "" {
		p.Heading = firstNonEmpty(front.SEO.Title, seo.SiteName)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = mod
	}
	return p, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return ""
	}
	return path.Clean(key)
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, p Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{page: p, expires: time.Now().Add(s.ttl)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
