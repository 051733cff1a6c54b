package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/externalapi/finnhub/dto"
	"watchlist_backend/internal/shared/ratelimiter"
)

// QuoteClient fetches live quotes from Finnhub.
type QuoteClient struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// Compile-time check that QuoteClient implements usecase.QuoteSource.
var _ usecase.QuoteSource = (*QuoteClient)(nil)

// NewQuoteClient creates a client throttled to cfg.RateLimit calls per minute.
func NewQuoteClient(cfg Config, client *http.Client) *QuoteClient {
	return &QuoteClient{
		cfg:     cfg,
		client:  client,
		limiter: ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute),
	}
}

// GetQuote returns the latest quote for symbol.
// Finnhub answers unknown symbols with a zero current price, which is reported
// as usecase.ErrQuoteUnavailable.
func (q *QuoteClient) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return entity.Quote{}, fmt.Errorf("finnhub rate limit: %w", err)
	}

	v := url.Values{}
	v.Set("symbol", symbol)
	u := fmt.Sprintf("%s/quote?%s", q.cfg.BaseURL, v.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, err
	}
	req.Header.Set("X-Finnhub-Token", q.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := q.client.Do(req)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var body dto.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&body) == nil && body.Error != "" {
			return entity.Quote{}, fmt.Errorf("finnhub http %d: %s", res.StatusCode, body.Error)
		}
		return entity.Quote{}, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, fmt.Errorf("decode finnhub quote %s: %w", symbol, err)
	}
	if body.Current == 0 {
		return entity.Quote{}, fmt.Errorf("finnhub quote %s: %w", symbol, usecase.ErrQuoteUnavailable)
	}

	quote := entity.Quote{Price: body.Current}
	if body.Change != nil {
		quote.Change = *body.Change
	}
	if body.ChangePercent != nil {
		quote.ChangePercent = *body.ChangePercent
	}
	return quote, nil
}
