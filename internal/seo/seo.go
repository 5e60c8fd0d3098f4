// Package seo resolves per-route page configuration into the document head state
// that crawlers and link-preview bots read.
package seo

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
)

const (
	// SiteName is the fixed suffix appended to page titles.
	SiteName = "Ambarish Ganguly"
	// DefaultTitle is used when a page does not supply its own title.
	DefaultTitle = SiteName + " | Data & AI Leader"
	// DefaultDescription is used when a page does not supply a description.
	DefaultDescription = "Ambarish Ganguly leads global Data & AI programmes that modernise utilities, energy, and sustainability operations."
	// DefaultRobots is the robots directive applied unless a page overrides it.
	DefaultRobots = "index, follow"
	// DefaultType is the Open Graph type for pages that do not declare one.
	DefaultType = "website"
	// DefaultImage is the social preview image path.
	DefaultImage = "/images/AG.jpg"
	// OGSiteName is written to og:site_name on every page.
	OGSiteName = SiteName + " Portfolio"
	// TwitterCard is the card style written on every page.
	TwitterCard = "summary_large_image"
	// FallbackSiteURL is the production origin used when no override is configured.
	FallbackSiteURL = "https://ambarishganguly.com"

	// DynamicMarker is the attribute carried by every injected structured-data script.
	DynamicMarker = "data-seo-dynamic"
	// StructuredDataType is the script MIME type for JSON-LD payloads.
	StructuredDataType = "application/ld+json"
)

// SiteURLEnv names the environment variables consulted for the site base URL, in order.
var SiteURLEnv = []string{"PORTFOLIO_SITE_URL", "VITE_SITE_URL"}

// PageConfig is the per-route metadata configuration supplied by each page.
type PageConfig struct {
	Title          string         `json:"title,omitempty" yaml:"title"`
	Description    string         `json:"description,omitempty" yaml:"description"`
	Keywords       Keywords       `json:"keywords,omitempty" yaml:"keywords"`
	Robots         string         `json:"robots,omitempty" yaml:"robots"`
	Pathname       string         `json:"pathname,omitempty" yaml:"pathname"`
	Canonical      string         `json:"canonical,omitempty" yaml:"canonical"`
	Type           string         `json:"type,omitempty" yaml:"type"`
	Image          string         `json:"image,omitempty" yaml:"image"`
	Author         string         `json:"author,omitempty" yaml:"author"`
	StructuredData StructuredData `json:"structuredData,omitempty" yaml:"structured_data"`
}

// Key returns the serialized form of the config. Two configs with the same key
// resolve to the same head state for the same location.
func (c PageConfig) Key() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

// MetaTag is a single managed <meta> element identified by Attr=Key.
type MetaTag struct {
	Attr    string `json:"attr"`
	Key     string `json:"key"`
	Content string `json:"content,omitempty"`
}

// ResolvedHead is the fully resolved head state for one route.
type ResolvedHead struct {
	Title          string            `json:"title"`
	Meta           []MetaTag         `json:"meta"`
	Canonical      string            `json:"canonical"`
	StructuredData []json.RawMessage `json:"structuredData"`
}

// Content returns the content of the managed tag attr=key, if any.
func (h ResolvedHead) Content(attr, key string) string {
	for _, m := range h.Meta {
		if m.Attr == attr && m.Key == key {
			return m.Content
		}
	}
	return ""
}

// Resolver turns page configs into head state against one site base URL.
type Resolver struct {
	// BaseURL overrides environment lookup when set.
	BaseURL string
}

// NewResolver returns a Resolver pinned to baseURL. An empty baseURL defers to the
// environment on every call.
func NewResolver(baseURL string) Resolver {
	return Resolver{BaseURL: baseURL}
}

// SiteURL returns the site origin with trailing slashes stripped.
func (r Resolver) SiteURL() string {
	if u := strings.TrimSpace(r.BaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return SiteURLFromEnv(os.LookupEnv)
}

// SiteURLFromEnv applies the process-wide base URL rule: the first non-blank
// override wins, otherwise FallbackSiteURL.
func SiteURLFromEnv(lookup func(string) (string, bool)) string {
	if lookup != nil {
		for _, key := range SiteURLEnv {
			if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
				return strings.TrimRight(strings.TrimSpace(v), "/")
			}
		}
	}
	return FallbackSiteURL
}

var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// Absolute resolves pathOrURL against the site URL. Absolute http(s) URLs are
// returned unchanged; empty input yields empty output.
func (r Resolver) Absolute(pathOrURL string) string {
	if pathOrURL == "" {
		return ""
	}
	if absoluteURLPattern.MatchString(pathOrURL) {
		return pathOrURL
	}
	return r.SiteURL() + "/" + strings.TrimLeft(pathOrURL, "/")
}

// Resolve computes the head state for cfg rendered at requestPath, which is the
// current path plus query string and is used when cfg names no canonical target.
func (r Resolver) Resolve(cfg PageConfig, requestPath string) ResolvedHead {
	title := DefaultTitle
	if cfg.Title != "" {
		title = cfg.Title + " | " + SiteName
	}
	description := firstNonEmpty(cfg.Description, DefaultDescription)
	canonical := r.Absolute(firstNonEmpty(cfg.Canonical, cfg.Pathname, requestPath))
	image := r.Absolute(firstNonEmpty(cfg.Image, DefaultImage))

	head := ResolvedHead{
		Title: title,
		Meta: []MetaTag{
			{Attr: "name", Key: "description", Content: description},
			{Attr: "name", Key: "keywords", Content: cfg.Keywords.String()},
			{Attr: "name", Key: "robots", Content: firstNonEmpty(cfg.Robots, DefaultRobots)},
			{Attr: "name", Key: "author", Content: firstNonEmpty(cfg.Author, SiteName)},
			{Attr: "property", Key: "og:title", Content: title},
			{Attr: "property", Key: "og:description", Content: description},
			{Attr: "property", Key: "og:type", Content: firstNonEmpty(cfg.Type, DefaultType)},
			{Attr: "property", Key: "og:url", Content: canonical},
			{Attr: "property", Key: "og:image", Content: image},
			{Attr: "property", Key: "og:site_name", Content: OGSiteName},
			{Attr: "name", Key: "twitter:card", Content: TwitterCard},
			{Attr: "name", Key: "twitter:title", Content: title},
			{Attr: "name", Key: "twitter:description", Content: description},
			{Attr: "name", Key: "twitter:image", Content: image},
			{Attr: "name", Key: "twitter:url", Content: canonical},
		},
		Canonical:      canonical,
		StructuredData: cfg.StructuredData.Payloads(),
	}
	return head
}

// Resolve is shorthand for Resolver{}.Resolve, consulting the environment for the base URL.
func Resolve(cfg PageConfig, requestPath string) ResolvedHead {
	return Resolver{}.Resolve(cfg, requestPath)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
