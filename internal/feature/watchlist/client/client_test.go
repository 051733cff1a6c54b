package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", Token: "tok"}, srv.Client())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("WATCHLIST_API_URL", "")
	t.Setenv("WATCHLIST_TOKEN", "abc")

	assert.Equal(t, Config{BaseURL: DefaultBaseURL, Token: "abc"}, LoadConfig())
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/watchlist", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id":"e1","symbol":"AAPL","company":"Apple Inc.","addedAt":"2024-03-01T12:00:00Z","price":189.5,"change":1,"changePercent":0.5},
			{"id":"e2","symbol":"BAD","company":"Bad Co.","addedAt":"2024-02-01T12:00:00Z"}
		]`)
	})

	rows, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), rows[0].AddedAt)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 189.5, *rows[0].Price)
	assert.False(t, rows[1].HasQuote())
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid token"}`)
	})

	_, err := c.Symbols(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_SymbolsAndMembership(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/watchlist/symbols":
			_, _ = io.WriteString(w, `{"symbols":["AAPL","BRK.B"]}`)
		case "/api/watchlist/symbols/BRK.B":
			_, _ = io.WriteString(w, `{"symbol":"BRK.B","watchlisted":true}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	symbols, err := c.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BRK.B"}, symbols)

	ok, err := c.IsWatchlisted(ctx, "BRK.B")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = c.IsWatchlisted(ctx, "NOPE")
	assert.Error(t, err)
}

func TestClient_IsWatchlisted_SlashSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watchlist/symbols", r.URL.Path, "slash symbols use the symbol list")
		_, _ = io.WriteString(w, `{"symbols":["AAPL","BRK/B"]}`)
	})
	ctx := context.Background()

	ok, err := c.IsWatchlisted(ctx, "BRK/B")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsWatchlisted(ctx, "BF/B")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_Toggle(t *testing.T) {
	added := true

	tests := []struct {
		name   string
		status int
		body   string
		want   usecase.ToggleResult
	}{
		{name: "added", status: http.StatusOK, body: `{"success":true,"added":true}`, want: usecase.ToggleResult{Success: true, Added: &added}},
		{name: "server failure body", status: http.StatusInternalServerError, body: `{"success":false,"error":"Failed to update watchlist"}`, want: usecase.ToggleResult{Error: usecase.MsgUpdateFailed}},
		{name: "user not found", status: http.StatusNotFound, body: `{"success":false,"error":"User not found"}`, want: usecase.ToggleResult{Error: usecase.MsgUserNotFound}},
		{name: "gateway error without body", status: http.StatusBadGateway, body: `<html>`, want: usecase.ToggleResult{Error: usecase.MsgUpdateFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, map[string]string{"symbol": "AAPL", "company": "Apple Inc."}, req)

				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			assert.Equal(t, tt.want, c.Toggle(context.Background(), "AAPL", "Apple Inc.", "ignored@example.com"))
		})
	}
}

func TestClient_ToggleUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL, Token: "tok"}, &http.Client{Timeout: time.Second})

	res := c.Toggle(context.Background(), "AAPL", "", "")

	assert.Equal(t, usecase.ToggleResult{Error: usecase.MsgUpdateFailed}, res)
}

func TestEmailFromToken(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1, "email": "alice@example.com"}).SignedString([]byte("any"))
	require.NoError(t, err)
	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1}).SignedString([]byte("any"))
	require.NoError(t, err)

	email, err := EmailFromToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	_, err = EmailFromToken(noEmail)
	assert.Error(t, err)

	_, err = EmailFromToken("not-a-jwt")
	assert.Error(t, err)
}
