// Command prerender writes a synchronised copy of the SPA shell for every route,
// plus sitemap.xml and robots.txt, so the site can be served from static hosting.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ambarishg/AmbarishWEBSITE/internal/config"
	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	"github.com/ambarishg/AmbarishWEBSITE/internal/nav"
	"github.com/ambarishg/AmbarishWEBSITE/internal/observability"
	"github.com/ambarishg/AmbarishWEBSITE/internal/page"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
	"github.com/ambarishg/AmbarishWEBSITE/internal/sitemap"
	"github.com/ambarishg/AmbarishWEBSITE/public"
)

// notFoundPath is rendered to 404.html; it is outside the route table.
const notFoundPath = "/404"

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		envFile string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:          "prerender",
		Short:        "Write per-route HTML, sitemap.xml and robots.txt for static hosting",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.WithEnvFile(envFile))
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Log.Level, observability.WithDevelopment(cfg.Dev), observability.WithOutputPaths("stderr"))
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()
			logger = logger.Named("prerender")

			if outDir == "" {
				outDir = cfg.Content.DistDir
			}
			ctx := observability.WithLogger(cmd.Context(), logger)
			written, err := run(ctx, cfg, outDir)
			if err != nil {
				logger.Error("prerender failed", zap.Error(err))
				return err
			}
			logger.Info("prerender complete", zap.String("out", outDir), zap.Int("files", written))
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env", ".env", "optional .env file with local overrides")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to PORTFOLIO_DIST_DIR)")
	return cmd
}

// run renders every route of cfg into outDir and returns the number of files written.
func run(ctx context.Context, cfg config.Config, outDir string) (int, error) {
	if strings.TrimSpace(outDir) == "" {
		return 0, errors.New("prerender: output directory is required")
	}
	storeOpts := []content.Option{}
	if cfg.Content.Dir != "" {
		storeOpts = append(storeOpts, content.WithDir(cfg.Content.Dir))
	}
	store, err := content.NewStore(storeOpts...)
	if err != nil {
		return 0, fmt.Errorf("prerender: content store: %w", err)
	}
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return 0, fmt.Errorf("prerender: i18n: %w", err)
	}
	siteURL := cfg.Site.URL
	if siteURL == "" {
		siteURL = seo.FallbackSiteURL
	}
	resolver := seo.NewResolver(siteURL)
	shell := public.NewShell(cfg.Content.DistDir, false)
	// Read the shell before any output can replace it.
	if _, err := shell.Bytes(); err != nil {
		return 0, err
	}
	renderer := page.NewRenderer(shell, store, bundle, resolver, 0)
	logger := observability.FromContext(ctx)

	written := 0
	write := func(rel string, data []byte) error {
		target := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("prerender: mkdir %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("prerender: write %s: %w", target, err)
		}
		written++
		logger.Debug("wrote file", zap.String("path", target), zap.Int("bytes", len(data)))
		return nil
	}

	for _, route := range nav.Routes {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		res, err := renderer.Render(ctx, page.Request{Location: nav.ParseLocation(route.Path)})
		if err != nil {
			return written, fmt.Errorf("prerender: render %s: %w", route.Path, err)
		}
		if err := write(routeFile(route.Path), res.HTML); err != nil {
			return written, err
		}
	}

	res, err := renderer.Render(ctx, page.Request{Location: nav.ParseLocation(notFoundPath)})
	if err != nil {
		return written, fmt.Errorf("prerender: render not found page: %w", err)
	}
	if err := write("404.html", res.HTML); err != nil {
		return written, err
	}

	pages, err := store.Pages()
	if err != nil {
		return written, fmt.Errorf("prerender: pages: %w", err)
	}
	xmlBody, err := sitemap.Build(pages, resolver).Marshal()
	if err != nil {
		return written, err
	}
	if err := write("sitemap.xml", xmlBody); err != nil {
		return written, err
	}
	if err := write("robots.txt", sitemap.Robots(resolver)); err != nil {
		return written, err
	}
	return written, nil
}

// routeFile maps a route path to its index.html, e.g. /highlights -> highlights/index.html.
func routeFile(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}
