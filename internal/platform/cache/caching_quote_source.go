// Package cache provides Redis-backed decorators for external data sources.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

const (
	DefaultQuoteTTL       = time.Minute
	DefaultQuoteNamespace = "quotes"

	// sharedFetchTimeout bounds a coalesced fetch, which no caller can cancel.
	sharedFetchTimeout = 30 * time.Second
)

// CachingQuoteSource decorates a QuoteSource with Redis caching.
// Concurrent misses for the same symbol share a single upstream call.
type CachingQuoteSource struct {
	inner     usecase.QuoteSource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	group     singleflight.Group
}

var _ usecase.QuoteSource = (*CachingQuoteSource)(nil)

// NewCachingQuoteSource wraps inner. A nil rdb disables caching but keeps coalescing.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "quotes".
func NewCachingQuoteSource(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteSource, namespace string) *CachingQuoteSource {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	if namespace == "" {
		namespace = DefaultQuoteNamespace
	}
	return &CachingQuoteSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetQuote returns the cached quote, or fetches and caches it.
// Failed fetches are not cached. The shared fetch outlives the caller that
// started it; each caller stops waiting when its own ctx is done.
func (c *CachingQuoteSource) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	key := c.cacheKey(symbol)

	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		if q, ok := c.lookup(fetchCtx, key); ok {
			return q, nil
		}

		q, err := c.inner.GetQuote(fetchCtx, symbol)
		if err != nil {
			return entity.Quote{}, err
		}
		c.store(fetchCtx, key, q)
		return q, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return entity.Quote{}, res.Err
		}
		return res.Val.(entity.Quote), nil
	case <-ctx.Done():
		return entity.Quote{}, ctx.Err()
	}
}

func (c *CachingQuoteSource) lookup(ctx context.Context, key string) (entity.Quote, bool) {
	if c.rdb == nil {
		return entity.Quote{}, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return entity.Quote{}, false
	}
	var q entity.Quote
	if err := json.Unmarshal(b, &q); err != nil {
		// Delete corrupted cache entry
		slog.Warn("dropping corrupted quote cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return entity.Quote{}, false
	}
	return q, true
}

// store is best effort: a Redis failure never fails the quote.
func (c *CachingQuoteSource) store(ctx context.Context, key string, q entity.Quote) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("failed to cache quote", "key", key, "error", err)
	}
}

func (c *CachingQuoteSource) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
