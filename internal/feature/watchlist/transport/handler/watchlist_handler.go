// Package handler serves the watchlist over HTTP, as a JSON API and as
// server-rendered pages.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// WatchlistUsecase is the watchlist service as seen by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	ListSymbols(ctx context.Context, email string) []string
	IsWatchlisted(ctx context.Context, symbol, email string) bool
	Toggle(ctx context.Context, symbol, company, email string) usecase.ToggleResult
	ListEntries(ctx context.Context, email string) []entity.WatchlistEntry
}

// Enricher merges live quotes into entries.
type Enricher interface {
	Enrich(ctx context.Context, entries []entity.WatchlistEntry) []entity.WatchlistRow
}

// CompanyNamer resolves a display name for a symbol.
type CompanyNamer interface {
	CompanyName(ctx context.Context, code string) string
}

// WatchlistHandler handles the watchlist JSON API. Every operation acts on
// the email of the verified session.
type WatchlistHandler struct {
	watchlist WatchlistUsecase
	enricher  Enricher
	companies CompanyNamer
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlist WatchlistUsecase, enricher Enricher, companies CompanyNamer) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, enricher: enricher, companies: companies}
}

// List handles GET /api/watchlist and returns the enriched entries, newest first.
func (h *WatchlistHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	entries := h.watchlist.ListEntries(ctx, jwtmw.Email(c))
	c.JSON(http.StatusOK, dto.NewWatchlistItems(h.enricher.Enrich(ctx, entries)))
}

// Symbols handles GET /api/watchlist/symbols.
func (h *WatchlistHandler) Symbols(c *gin.Context) {
	symbols := h.watchlist.ListSymbols(c.Request.Context(), jwtmw.Email(c))
	c.JSON(http.StatusOK, dto.SymbolsResponse{Symbols: symbols})
}

// Membership handles GET /api/watchlist/symbols/:symbol.
func (h *WatchlistHandler) Membership(c *gin.Context) {
	symbol := c.Param("symbol")
	c.JSON(http.StatusOK, dto.MembershipResponse{
		Symbol:      symbol,
		Watchlisted: h.watchlist.IsWatchlisted(c.Request.Context(), symbol, jwtmw.Email(c)),
	})
}

// Toggle handles POST /api/watchlist/toggle. The body is always a
// ToggleResponse; the status mirrors its outcome.
func (h *WatchlistHandler) Toggle(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ToggleResponse{Error: usecase.MsgInvalidData})
		return
	}

	res := toggle(c, h.watchlist, h.companies, req)
	c.JSON(toggleStatus(res), dto.NewToggleResponse(res))
}

// toggle fills a missing company from the catalog before toggling.
func toggle(c *gin.Context, watchlist WatchlistUsecase, companies CompanyNamer, req dto.ToggleRequest) usecase.ToggleResult {
	ctx := c.Request.Context()
	company := req.Company
	if company == "" && req.Symbol != "" {
		company = companies.CompanyName(ctx, req.Symbol)
	}
	return watchlist.Toggle(ctx, req.Symbol, company, jwtmw.Email(c))
}

func toggleStatus(res usecase.ToggleResult) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.Error == usecase.MsgInvalidData:
		return http.StatusBadRequest
	case res.Error == usecase.MsgUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
