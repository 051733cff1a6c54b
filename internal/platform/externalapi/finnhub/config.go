// Package finnhub provides a quote client for the Finnhub stock market API.
package finnhub

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaseURL   = "https://finnhub.io/api/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 60 // free tier: calls per minute
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey    string        // API token sent as X-Finnhub-Token
	BaseURL   string        // e.g. "https://finnhub.io/api/v1"
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // calls per minute, 0 disables throttling
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:    os.Getenv("FINNHUB_API_KEY"),
		BaseURL:   os.Getenv("FINNHUB_BASE_URL"),
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if d, err := time.ParseDuration(os.Getenv("FINNHUB_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("FINNHUB_RATE_LIMIT")); err == nil && n >= 0 {
		cfg.RateLimit = n
	}
	return cfg
}
