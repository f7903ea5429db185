package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/headingnav/internal/outline"
)

type Config struct {
	Port string

	// Content
	ContentDir      string
	ContentSelector string
	SiteTitle       string
	RenderWorkers   int

	// Auth for admin endpoints. Empty disables them.
	AdminAPIKey string

	// HTTP
	AllowedOrigins []string
	MaxUploadBytes int64

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir:      envOr("CONTENT_DIR", "content"),
		ContentSelector: envOr("CONTENT_SELECTOR", "article"),
		SiteTitle:       envOr("SITE_TITLE", "Notes"),
		RenderWorkers:   envInt("RENDER_WORKERS", 4),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"*"}),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 1<<20), // 1MB

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.RenderWorkers <= 0 {
		cfg.RenderWorkers = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1 << 20
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if _, err := outline.ParseSelector(c.ContentSelector); err != nil {
		return fmt.Errorf("CONTENT_SELECTOR: %w", err)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	return nil
}

// Selector returns the parsed content selector. Call Validate first.
func (c Config) Selector() outline.Selector {
	sel, err := outline.ParseSelector(c.ContentSelector)
	if err != nil {
		return outline.Selector{Tag: "article"}
	}
	return sel
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
