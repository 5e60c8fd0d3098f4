// Package server wires the HTTP surface: rendered route pages, static build
// files, the metadata and navigation JSON endpoints, and the crawler documents.
package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/httpx"
	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	mw "github.com/ambarishg/AmbarishWEBSITE/internal/middleware"
	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/observability"
	"github.com/ambarishg/AmbarishWEBSITE/internal/page"
)

const (
	defaultTimeout    = 30 * time.Second
	errorNotFoundCode = "route_not_found"
)

type routerConfig struct {
	logger      *zap.Logger
	distDir     string
	dist        fs.FS
	corsOrigins []string
	timeout     time.Duration
	middlewares []func(http.Handler) http.Handler
	startedAt   time.Time
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

// WithLogger sets the base request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *routerConfig) {
		cfg.logger = logger
	}
}

// WithDistDir serves static files from the SPA build directory.
func WithDistDir(dir string) Option {
	return func(cfg *routerConfig) {
		cfg.distDir = dir
	}
}

// WithDistFS serves static files from fsys instead of a directory on disk.
func WithDistFS(fsys fs.FS) Option {
	return func(cfg *routerConfig) {
		cfg.dist = fsys
	}
}

// WithCORSOrigins allows cross-origin calls to /api from the given origins.
func WithCORSOrigins(origins ...string) Option {
	return func(cfg *routerConfig) {
		cfg.corsOrigins = append(cfg.corsOrigins, origins...)
	}
}

// WithTimeout overrides the per-request handler timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *routerConfig) {
		cfg.timeout = d
	}
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mws ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mws...)
	}
}

// NewRouter constructs the chi router with shared middleware and every route.
func NewRouter(renderer *page.Renderer, store *content.Store, bundle *i18n.Bundle, opts ...Option) chi.Router {
	cfg := routerConfig{
		logger:    zap.NewNop(),
		timeout:   defaultTimeout,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dist == nil && cfg.distDir != "" {
		cfg.dist = os.DirFS(filepath.Clean(cfg.distDir))
	}

	h := &handlers{
		renderer:  renderer,
		store:     store,
		startedAt: cfg.startedAt,
	}
	if cfg.dist != nil {
		h.dist = cfg.dist
		h.static = mw.AssetsWithCache(cfg.dist, "", mw.PublicCache)
		if assets, err := fs.Sub(cfg.dist, "assets"); err == nil {
			h.assets = mw.AssetsWithCache(assets, "/assets", mw.ImmutableCache)
		}
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		observability.TraceMiddleware(),
		observability.InjectLoggerMiddleware(cfg.logger),
		observability.RequestLoggerMiddleware("/healthz"),
		observability.RecoveryMiddleware(cfg.logger),
		middleware.GetHead,
		middleware.Compress(5),
		middleware.Timeout(cfg.timeout),
	)
	for _, m := range cfg.middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.Get("/healthz", h.healthz)
	r.Get("/robots.txt", h.robots)
	r.Get("/sitemap.xml", h.sitemap)
	if h.assets != nil {
		r.Handle("/assets/*", h.assets)
	}
	if h.static != nil {
		r.Handle("/images/*", h.static)
	}

	r.Route("/api", func(api chi.Router) {
		if len(cfg.corsOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.corsOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type", "traceparent"},
				ExposedHeaders: []string{"traceparent"},
				MaxAge:         300,
			}))
		}
		api.Get("/meta", h.meta)
		api.Get("/navigation", h.navigation)
		api.NotFound(func(w http.ResponseWriter, req *http.Request) {
			httpx.WriteError(req.Context(), w, httpx.NotFound(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path)))
		})
	})

	pageMW := []func(http.Handler) http.Handler{mw.ColorMode, mw.Locale(bundle)}
	r.Group(func(pages chi.Router) {
		pages.Use(pageMW...)
		for _, route := range nav.Routes {
			pages.Get(route.Path, h.page)
		}
	})
	r.NotFound(chi.Chain(pageMW...).HandlerFunc(h.notFound).ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	return r
}

// staticFile reports whether p names a file in the build output other than the shell.
func (h *handlers) staticFile(p string) bool {
	if h.dist == nil || path.Ext(p) == "" {
		return false
	}
	name := strings.TrimPrefix(path.Clean(p), "/")
	if name == "" || name == "index.html" || !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(h.dist, name)
	return err == nil && !info.IsDir()
}
