package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/usecase"
)

// newTestClient points a client at handler. A zero rateLimit disables throttling.
func newTestClient(t *testing.T, rateLimit int, handler http.HandlerFunc) *QuoteClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{APIKey: "test-key", BaseURL: server.URL, Timeout: time.Second, RateLimit: rateLimit}
	return NewQuoteClient(cfg, server.Client())
}

func TestQuoteClient_GetQuote_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.Header.Get("X-Finnhub-Token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c":190.5,"d":-1.25,"dp":-0.6519,"h":192,"l":189.1,"o":191,"pc":191.75,"t":1717171200}`))
	})

	q, err := client.GetQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.InDelta(t, 190.5, q.Price, 1e-9)
	assert.InDelta(t, -1.25, q.Change, 1e-9)
	assert.InDelta(t, -0.6519, q.ChangePercent, 1e-9)
}

func TestQuoteClient_GetQuote_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
		unavailable bool
	}{
		{
			name:        "unknown symbol answers with zero price",
			status:      http.StatusOK,
			body:        `{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`,
			unavailable: true,
		},
		{
			name:        "invalid api key",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Invalid API key"}`,
			errContains: "finnhub http 401: Invalid API key",
		},
		{
			name:        "rate limited without body",
			status:      http.StatusTooManyRequests,
			errContains: "finnhub http 429",
		},
		{
			name:        "malformed json",
			status:      http.StatusOK,
			body:        `{"c":`,
			errContains: "decode finnhub quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetQuote(context.Background(), "ZZZZ")

			require.Error(t, err)
			if tt.unavailable {
				assert.ErrorIs(t, err, usecase.ErrQuoteUnavailable)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestQuoteClient_GetQuote_ContextCancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"c":1}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetQuote(ctx, "AAPL")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestQuoteClient_GetQuote_Throttled(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, 1, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":1,"d":0,"dp":0}`))
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.GetQuote(ctx, "AAPL")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "k")
	t.Setenv("FINNHUB_BASE_URL", "")
	t.Setenv("FINNHUB_TIMEOUT", "3s")
	t.Setenv("FINNHUB_RATE_LIMIT", "30")

	cfg := LoadConfig()

	assert.Equal(t, Config{APIKey: "k", BaseURL: DefaultBaseURL, Timeout: 3 * time.Second, RateLimit: 30}, cfg)

	t.Setenv("FINNHUB_TIMEOUT", "bogus")
	t.Setenv("FINNHUB_RATE_LIMIT", "-5")
	cfg = LoadConfig()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
}
