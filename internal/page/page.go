// Package page renders the SPA shell for one location: it synchronises the
// document head, marks the <html> element with language and colour mode, and
// adds a crawler-readable <noscript> summary of the page.
package page

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/format"
	"github.com/ambarishg/AmbarishWEBSITE/internal/head"
	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/observability"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
)

// NotFoundRobots is the robots directive served for paths outside the route table.
const NotFoundRobots = "noindex, follow"

// FallbackMarker identifies the <noscript> block this package owns.
const FallbackMarker = "data-portfolio-fallback"

const metricNamespace = "github.com/ambarishg/AmbarishWEBSITE/internal/page"

// ShellSource supplies the shell document bytes.
type ShellSource interface {
	Bytes() ([]byte, error)
}

// Request describes one render.
type Request struct {
	Location  nav.Location
	Lang      string
	ColorMode string
}

// Result is a rendered document and the head state it carries.
type Result struct {
	HTML   []byte
	Head   seo.ResolvedHead
	Route  nav.Route
	Status int
}

// Renderer renders shells. It is safe for concurrent use; every render parses
// its own document from the shell bytes.
type Renderer struct {
	shell    ShellSource
	store    *content.Store
	bundle   *i18n.Bundle
	resolver seo.Resolver
	ttl      time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry

	meter     metric.Meter
	latency   metric.Float64Histogram
	cacheHits metric.Int64Counter
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithMeter injects a custom OpenTelemetry meter.
func WithMeter(m metric.Meter) Option {
	return func(r *Renderer) {
		r.meter = m
	}
}

type cacheEntry struct {
	result  Result
	expires time.Time
}

// NewRenderer wires a Renderer. ttl <= 0 disables the render cache.
func NewRenderer(shell ShellSource, store *content.Store, bundle *i18n.Bundle, resolver seo.Resolver, ttl time.Duration, opts ...Option) *Renderer {
	r := &Renderer{
		shell:    shell,
		store:    store,
		bundle:   bundle,
		resolver: resolver,
		ttl:      ttl,
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.meter == nil {
		r.meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	// Instrument errors leave the nil instrument in place; record skips it.
	if h, err := r.meter.Float64Histogram("page.render.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for uncached page renders"),
	); err == nil {
		r.latency = h
	}
	if c, err := r.meter.Int64Counter("page.render.cache_hits",
		metric.WithDescription("Count of renders served from the render cache"),
	); err == nil {
		r.cacheHits = c
	}
	return r
}

// Resolver returns the resolver pages are rendered against.
func (r *Renderer) Resolver() seo.Resolver { return r.resolver }

// Config returns the page config for a path. Unknown paths get the default
// metadata with robots noindex and ok=false.
func (r *Renderer) Config(p string) (cfg seo.PageConfig, route nav.Route, ok bool, err error) {
	route, ok = nav.Lookup(p)
	if !ok {
		return seo.PageConfig{Robots: NotFoundRobots}, nav.Route{}, false, nil
	}
	cfg, err = r.store.Config(route.Key, r.resolver)
	if err != nil {
		return seo.PageConfig{}, route, true, fmt.Errorf("page: config %s: %w", route.Key, err)
	}
	return cfg, route, true, nil
}

// Resolve is the pure head resolution for a location, without rendering.
func (r *Renderer) Resolve(loc nav.Location) (seo.ResolvedHead, error) {
	cfg, _, _, err := r.Config(loc.Pathname)
	if err != nil {
		return seo.ResolvedHead{}, err
	}
	return r.resolver.Resolve(cfg, loc.PathAndQuery()), nil
}

// Render produces the document for req.
func (r *Renderer) Render(ctx context.Context, req Request) (Result, error) {
	loc := req.Location
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	lang := req.Lang
	if lang == "" {
		lang = i18n.Default
	}

	cfg, route, found, err := r.Config(loc.Pathname)
	if err != nil {
		return Result{}, err
	}

	key := strings.Join([]string{cfg.Key(), lang, req.ColorMode}, "|")
	if found {
		if res, ok := r.cached(key); ok {
			if r.cacheHits != nil {
				r.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("page.key", route.Key)))
			}
			return res, nil
		}
	}
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "page.render",
		attribute.String("page.path", loc.Pathname),
		attribute.String("page.key", route.Key),
		attribute.Bool("page.found", found),
	)
	defer span.End()

	shell, err := r.shell.Bytes()
	if err != nil {
		return Result{}, err
	}
	state, err := head.ParseBytes(shell)
	if err != nil {
		return Result{}, err
	}
	resolved := state.Synchronize(r.resolver, cfg, loc.PathAndQuery())

	doc := state.Document()
	decorateRoot(doc, lang, req.ColorMode)
	if err := r.injectFallback(doc, route, found, loc, lang); err != nil {
		observability.FromContext(ctx).Warn("page: fallback skipped", zap.String("path", loc.Pathname), zap.Error(err))
	}

	out, err := state.HTML()
	if err != nil {
		return Result{}, err
	}
	res := Result{HTML: []byte(out), Head: resolved, Route: route, Status: http.StatusOK}
	if r.latency != nil {
		r.latency.Record(ctx, float64(time.Since(start))/float64(time.Millisecond),
			metric.WithAttributes(attribute.Bool("page.found", found)))
	}
	if !found {
		res.Status = http.StatusNotFound
		return res, nil
	}
	r.remember(key, res)
	return res, nil
}

// decorateRoot sets the document language and the colour-mode hints the SPA's
// theme script applies before hydration.
func decorateRoot(doc *goquery.Document, lang, mode string) {
	root := doc.Find("html").First()
	root.SetAttr("lang", lang)
	if mode == "" {
		return
	}
	root.SetAttr("data-theme", mode)
	root.SetAttr("style", "color-scheme: "+mode+";")
	body := doc.Find("body").First()
	body.RemoveClass("chakra-ui-light", "chakra-ui-dark")
	body.AddClass("chakra-ui-" + mode)
}

func (r *Renderer) injectFallback(doc *goquery.Document, route nav.Route, found bool, loc nav.Location, lang string) error {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return errors.New("document has no body")
	}
	body.Find(`noscript[` + FallbackMarker + `]`).Remove()

	noscript := element(atom.Noscript, FallbackMarker, "true")
	main := element(atom.Main, "id", "main-content")
	noscript.AppendChild(main)
	body.AppendNodes(noscript)
	mainSel := body.FindNodes(main)

	mainSel.AppendNodes(textElement(atom.P, r.bundle.T(lang, "fallback.noscript")))

	var heading, summary string
	if found {
		p, err := r.store.Page(route.Key)
		if err != nil {
			return err
		}
		heading = p.Heading
		if summary, err = p.SummaryHTML(); err != nil {
			return err
		}
	} else {
		heading = r.bundle.T(lang, "notfound.heading")
	}
	mainSel.AppendNodes(textElement(atom.H1, heading))
	if summary != "" {
		mainSel.AppendHtml(summary)
	} else if !found {
		mainSel.AppendNodes(textElement(atom.P, r.bundle.T(lang, "notfound.summary")))
	}
	if facts := r.facts(route.Key); facts != "" {
		mainSel.AppendNodes(textElement(atom.P, r.bundle.T(lang, "fallback.focus_areas")+": "+facts))
	}

	if crumbs := nav.Breadcrumbs(loc.Pathname); found && len(crumbs) > 2 {
		mainSel.AppendNodes(r.breadcrumbs(crumbs, lang))
	}
	mainSel.AppendNodes(r.menu(loc, lang))
	return nil
}

// facts summarises the catalog-driven sections of the collection pages.
func (r *Renderer) facts(key string) string {
	var areas []content.FocusArea
	var noun, plural string
	switch key {
	case "kaggleAchievements":
		areas, noun, plural = r.store.Catalog().KaggleAreas(), "Kaggle recognition", "Kaggle recognitions"
	case "highlightMicrosoftAzure":
		areas, noun, plural = r.store.Catalog().AzureAreas(), "story", "stories"
	default:
		return ""
	}
	if len(areas) == 0 {
		return ""
	}
	return format.Count(content.ItemCount(areas), noun, plural) + " across " + content.Headline(areas)
}

func (r *Renderer) menu(loc nav.Location, lang string) *html.Node {
	n := element(atom.Nav, "aria-label", r.bundle.T(lang, "fallback.navigation"))
	ul := element(atom.Ul)
	n.AppendChild(ul)
	var add func(items []nav.RenderedItem)
	add = func(items []nav.RenderedItem) {
		for _, it := range items {
			li := element(atom.Li)
			a := element(atom.A, "href", it.Href)
			if it.External {
				a.Attr = append(a.Attr, html.Attribute{Key: "rel", Val: "noopener"})
			}
			if it.Active {
				a.Attr = append(a.Attr, html.Attribute{Key: "aria-current", Val: "page"})
			}
			a.AppendChild(&html.Node{Type: html.TextNode, Data: r.bundle.T(lang, it.LabelKey)})
			li.AppendChild(a)
			ul.AppendChild(li)
			add(it.Children)
		}
	}
	add(nav.Build(loc))
	return n
}

func (r *Renderer) breadcrumbs(crumbs []nav.Crumb, lang string) *html.Node {
	n := element(atom.Nav, "aria-label", r.bundle.T(lang, "fallback.breadcrumbs"))
	ol := element(atom.Ol)
	n.AppendChild(ol)
	for _, c := range crumbs {
		label := c.Label
		if c.LabelKey != "" {
			label = r.bundle.T(lang, c.LabelKey)
		}
		li := element(atom.Li)
		a := element(atom.A, "href", c.Href)
		a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
		li.AppendChild(a)
		ol.AppendChild(li)
	}
	return n
}

func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func (r *Renderer) cached(key string) (Result, bool) {
	if r.ttl <= 0 {
		return Result{}, false
	}
	r.mu.RLock()
	entry, ok := r.cache[key]
	r.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Result{}, false
	}
	return entry.result, true
}

func (r *Renderer) remember(key string, res Result) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cacheEntry{result: res, expires: time.Now().Add(r.ttl)}
}
