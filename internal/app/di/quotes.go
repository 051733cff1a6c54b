// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	infrahttp "watchlist_backend/internal/platform/http"
)

// NewQuoteSource creates the Finnhub quote client behind the Redis cache.
// With a nil rdb quotes are not cached, but concurrent fetches of the same
// symbol are still coalesced.
func NewQuoteSource(cfg finnhub.Config, rdb *redis.Client, ttl time.Duration) usecase.QuoteSource {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return cache.NewCachingQuoteSource(rdb, ttl, finnhub.NewQuoteClient(cfg, httpClient), cache.DefaultQuoteNamespace)
}
