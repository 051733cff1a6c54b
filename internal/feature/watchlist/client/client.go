// Package client talks to the watchlist HTTP API on behalf of a signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/presentation"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

const DefaultBaseURL = "http://localhost:8080"

// ErrUnauthorized is returned when the API rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// Config holds the API location and the caller's access token.
type Config struct {
	BaseURL string
	Token   string
}

// LoadConfig reads WATCHLIST_API_URL and WATCHLIST_TOKEN.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("WATCHLIST_API_URL"),
		Token:   os.Getenv("WATCHLIST_TOKEN"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

// Client calls the watchlist API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Compile-time check that Client can drive a presentation.ToggleControl.
var _ presentation.Toggler = (*Client)(nil)

// New creates a Client.
func New(cfg Config, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    httpClient,
	}
}

// List returns the enriched watchlist, newest first.
func (c *Client) List(ctx context.Context) ([]entity.WatchlistRow, error) {
	var items []dto.WatchlistItem
	if _, err := c.do(ctx, http.MethodGet, "/api/watchlist", nil, &items); err != nil {
		return nil, err
	}
	rows := make([]entity.WatchlistRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.Row())
	}
	return rows, nil
}

// Symbols returns the watched symbols.
func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	var body dto.SymbolsResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/watchlist/symbols", nil, &body); err != nil {
		return nil, err
	}
	return body.Symbols, nil
}

// IsWatchlisted asks whether symbol is watched. A symbol containing "/"
// cannot travel as a path segment, so it is looked up in the symbol list.
func (c *Client) IsWatchlisted(ctx context.Context, symbol string) (bool, error) {
	if strings.Contains(symbol, "/") {
		symbols, err := c.Symbols(ctx)
		if err != nil {
			return false, err
		}
		return slices.Contains(symbols, symbol), nil
	}

	var body dto.MembershipResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/watchlist/symbols/"+url.PathEscape(symbol), nil, &body); err != nil {
		return false, err
	}
	return body.Watchlisted, nil
}

// Toggle flips symbol on the server. The server takes the user from the
// token, so email is not sent. Transport failures are reported as a failed
// result, like any other server-side failure.
func (c *Client) Toggle(ctx context.Context, symbol, company, _ string) usecase.ToggleResult {
	var body dto.ToggleResponse
	status, err := c.do(ctx, http.MethodPost, "/api/watchlist/toggle", dto.ToggleRequest{Symbol: symbol, Company: company}, &body)
	switch {
	case err == nil:
		return body.Result()
	case status >= 400 && body.Error != "":
		return body.Result()
	default:
		slog.Error("watchlist toggle request failed", "symbol", symbol, "error", err)
		return usecase.ToggleResult{Error: usecase.MsgUpdateFailed}
	}
}

// do sends one request. out is decoded for every JSON response, including
// errors, so callers can inspect error bodies.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	decodeErr := json.NewDecoder(res.Body).Decode(out)

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return res.StatusCode, ErrUnauthorized
	case res.StatusCode >= 400:
		return res.StatusCode, fmt.Errorf("%s %s: http %d", method, path, res.StatusCode)
	case decodeErr != nil:
		return res.StatusCode, fmt.Errorf("decode %s response: %w", path, decodeErr)
	}
	return res.StatusCode, nil
}

// EmailFromToken reads the email claim without verifying the signature.
// The server verifies the token on every call; the CLI only needs the
// email to enable its toggle control.
func EmailFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}
