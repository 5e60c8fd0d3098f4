package server

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/httpx"
	mw "github.com/ambarishg/AmbarishWEBSITE/internal/middleware"
	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/observability"
	"github.com/ambarishg/AmbarishWEBSITE/internal/page"
	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
	"github.com/ambarishg/AmbarishWEBSITE/internal/sitemap"
)

type handlers struct {
	renderer  *page.Renderer
	store     *content.Store
	dist      fs.FS
	static    http.Handler
	assets    http.Handler
	startedAt time.Time
}

// MetaResponse is the body of GET /api/meta.
type MetaResponse struct {
	Path  string           `json:"path"`
	Route string           `json:"route,omitempty"`
	Found bool             `json:"found"`
	Head  seo.ResolvedHead `json:"head"`
}

// NavigationResponse is the body of GET /api/navigation.
type NavigationResponse struct {
	Location nav.Location          `json:"location"`
	Route    string                `json:"route"`
	Scroll   nav.ScrollInstruction `json:"scroll"`
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	res, err := h.renderer.Render(r.Context(), page.Request{
		Location:  nav.FromURL(r.URL),
		Lang:      mw.Lang(r),
		ColorMode: requestctx.ColorMode(r.Context()),
	})
	if err != nil {
		observability.FromContext(r.Context()).Error("page render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.HTML)
}

// notFound serves files from the build output and renders the shell with the
// not-found head for everything else.
func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && h.staticFile(r.URL.Path) {
		h.static.ServeHTTP(w, r)
		return
	}
	h.page(w, r)
}

func (h *handlers) meta(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("path"))
	if raw == "" {
		httpx.WriteError(r.Context(), w, httpx.BadRequest("missing_path", "query parameter path is required", "path"))
		return
	}
	if !strings.HasPrefix(raw, "/") {
		httpx.WriteError(r.Context(), w, httpx.BadRequest("invalid_path", "path must start with /", "path").
			WithDetails(map[string]any{"path": raw}))
		return
	}
	loc := nav.ParseLocation(raw)
	resolved, err := h.renderer.Resolve(loc)
	if err != nil {
		observability.FromContext(r.Context()).Error("meta resolve failed", zap.String("path", raw), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.Internal("resolve_failed"))
		return
	}
	resp := MetaResponse{Path: loc.PathAndQuery(), Head: resolved}
	if route, ok := nav.Lookup(loc.Pathname); ok {
		resp.Route = route.Key
		resp.Found = true
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handlers) navigation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := nav.ParseLocation(strings.TrimSpace(q.Get("path")))
	if hash := strings.TrimPrefix(strings.TrimSpace(q.Get("hash")), "#"); hash != "" {
		loc.Hash = "#" + hash
	}
	route, err := nav.Find(loc.Pathname)
	if err != nil {
		if errors.Is(err, nav.ErrUnknownRoute) {
			httpx.WriteError(r.Context(), w, httpx.NotFound(errorNotFoundCode, err.Error()).
				WithDetails(map[string]any{"path": loc.Pathname}))
			return
		}
		httpx.WriteError(r.Context(), w, httpx.Internal("navigation_failed"))
		return
	}
	ids := append(route.AllAnchors(), h.store.Anchors(route.Key)...)
	httpx.WriteJSON(w, http.StatusOK, NavigationResponse{
		Location: loc,
		Route:    route.Key,
		Scroll:   nav.PlanNavigation(loc, ids),
	})
}

func (h *handlers) sitemap(w http.ResponseWriter, r *http.Request) {
	pages, err := h.store.Pages()
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap pages failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body, err := sitemap.Build(pages, h.renderer.Resolver()).Marshal()
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap encode failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", mw.PublicCache)
	_, _ = w.Write(body)
}

func (h *handlers) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", mw.PublicCache)
	_, _ = w.Write(sitemap.Robots(h.renderer.Resolver()))
}
