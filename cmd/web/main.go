package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ambarishg/AmbarishWEBSITE/internal/config"
	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	"github.com/ambarishg/AmbarishWEBSITE/internal/observability"
	"github.com/ambarishg/AmbarishWEBSITE/internal/page"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
	"github.com/ambarishg/AmbarishWEBSITE/internal/server"
	"github.com/ambarishg/AmbarishWEBSITE/public"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		envFile string
		addr    string
	)
	flag.StringVar(&envFile, "env", ".env", "optional .env file with local overrides")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (defaults to :PORTFOLIO_PORT)")
	flag.Parse()

	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", invalid.Fields())
		} else {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		}
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level, observability.WithDevelopment(cfg.Dev))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise server", zap.Error(err))
	}
	if addr != "" {
		srv.Addr = addr
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", srv.Addr))
	go func() {
		serverLogger.Info("portfolio web listening",
			zap.Bool("dev", cfg.Dev),
			zap.String("dist", cfg.Content.DistDir),
			zap.String("site_url", cfg.Site.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newServer wires content, rendering and routing for cfg.
func newServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	storeOpts := []content.Option{content.WithCacheTTL(cfg.Content.RenderCacheTTL)}
	if cfg.Content.Dir != "" {
		storeOpts = append(storeOpts, content.WithDir(cfg.Content.Dir))
	}
	store, err := content.NewStore(storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("content store: %w", err)
	}
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("i18n: %w", err)
	}

	shell := public.NewShell(cfg.Content.DistDir, cfg.Dev)
	if !shell.FromDist() {
		logger.Warn("SPA build not found; serving the embedded shell", zap.String("dist", cfg.Content.DistDir))
	}
	siteURL := cfg.Site.URL
	if siteURL == "" {
		siteURL = seo.FallbackSiteURL
	}
	resolver := seo.NewResolver(siteURL)
	renderer := page.NewRenderer(shell, store, bundle, resolver, cfg.Content.RenderCacheTTL)

	router := server.NewRouter(renderer, store, bundle,
		server.WithLogger(logger),
		server.WithDistDir(cfg.Content.DistDir),
		server.WithCORSOrigins(cfg.Server.CORSOrigins...),
	)

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}, nil
}
