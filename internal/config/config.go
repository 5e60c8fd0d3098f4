// Package config resolves portfolio-web settings from defaults, a .env file,
// process environment and explicit overrides, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile        = ".env"
	defaultPort           = "8080"
	defaultDistDir        = "dist"
	defaultLogLevel       = "info"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultRenderCacheTTL = 5 * time.Minute
)

// Config is the resolved process configuration.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Content ContentConfig
	Log     LogConfig
	Dev     bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

// Addr is the listen address for Port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

type SiteConfig struct {
	// URL is the public origin used for absolute links. Blank means the built-in fallback.
	URL string
}

type ContentConfig struct {
	DistDir        string
	Dir            string // optional page markdown override
	RenderCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables os.LookupEnv, relying only on the map and .env file.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := readDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	src := source{layers: []map[string]string{options.envMap}, dotEnv: dotEnv, system: options.useSystemEnv}

	dev := src.boolean("PORTFOLIO_DEV", false)
	cacheTTL := src.duration("PORTFOLIO_RENDER_CACHE_TTL", defaultRenderCacheTTL)
	if dev {
		cacheTTL = 0
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         src.str("PORTFOLIO_PORT", src.str("PORT", defaultPort)),
			ReadTimeout:  src.duration("PORTFOLIO_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: src.duration("PORTFOLIO_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  src.duration("PORTFOLIO_IDLE_TIMEOUT", defaultIdleTimeout),
			CORSOrigins:  src.list("PORTFOLIO_CORS_ORIGINS"),
		},
		Site: SiteConfig{
			URL: strings.TrimRight(strings.TrimSpace(src.str("PORTFOLIO_SITE_URL", src.str("VITE_SITE_URL", ""))), "/"),
		},
		Content: ContentConfig{
			DistDir:        src.str("PORTFOLIO_DIST_DIR", defaultDistDir),
			Dir:            src.str("PORTFOLIO_CONTENT_DIR", ""),
			RenderCacheTTL: cacheTTL,
		},
		Log: LogConfig{
			Level: strings.ToLower(src.str("LOG_LEVEL", defaultLogLevel)),
		},
		Dev: dev,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	var invalid []string
	check := func(ok bool, field string) {
		if !ok {
			invalid = append(invalid, field)
		}
	}

	port, err := strconv.Atoi(cfg.Server.Port)
	check(err == nil && port > 0 && port <= 65535, "Server.Port")
	if cfg.Site.URL != "" {
		u, err := url.Parse(cfg.Site.URL)
		check(err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "", "Site.URL")
	}
	check(strings.TrimSpace(cfg.Content.DistDir) != "", "Content.DistDir")
	check(cfg.Server.ReadTimeout > 0, "Server.ReadTimeout")
	check(cfg.Server.WriteTimeout > 0, "Server.WriteTimeout")

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

// source resolves keys from explicit overrides, then the process
// environment, then the .env file.
type source struct {
	layers []map[string]string
	dotEnv map[string]string
	system bool
}

func (s source) lookup(key string) (string, bool) {
	for _, layer := range s.layers {
		if v, ok := layer[key]; ok {
			return v, true
		}
	}
	if s.system {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
	}
	v, ok := s.dotEnv[key]
	return v, ok
}

func (s source) str(key, fallback string) string {
	if v, ok := s.lookup(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// duration accepts Go durations ("30s") or whole seconds ("30").
func (s source) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(s.str(key, ""))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func (s source) boolean(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s.str(key, ""))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

func (s source) list(key string) []string {
	out := []string{}
	for _, part := range strings.Split(s.str(key, ""), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// readDotEnv parses KEY=VALUE lines, skipping anything else. A missing file
// is not an error.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	values := map[string]string{}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = unquote(strings.TrimSpace(value))
	}
	return values, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
