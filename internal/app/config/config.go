// Package config holds the server settings that do not belong to a single
// platform package.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
)

// Config is the HTTP server configuration.
type Config struct {
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	SignInPath         string
	CookieSecure       bool
	QuoteCacheTTL      time.Duration
	QuoteConcurrency   int
}

// Load reads the server configuration from the environment.
func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          os.Getenv("GIN_MODE"),
		SignInPath:       getEnv("SIGN_IN_PATH", "/sign-in"),
		CookieSecure:     getEnv("COOKIE_SECURE", "true") != "false",
		QuoteCacheTTL:    cache.DefaultQuoteTTL,
		QuoteConcurrency: usecase.DefaultQuoteConcurrency,
	}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}
	if d, err := time.ParseDuration(os.Getenv("QUOTE_CACHE_TTL")); err == nil && d > 0 {
		cfg.QuoteCacheTTL = d
	}
	if n, err := strconv.Atoi(os.Getenv("QUOTE_CONCURRENCY")); err == nil && n > 0 {
		cfg.QuoteConcurrency = n
	}
	return cfg
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
