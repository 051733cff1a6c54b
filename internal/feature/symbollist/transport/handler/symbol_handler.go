// Package handler serves the instrument catalog over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase lists the instrument catalog.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler handles catalog requests.
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List handles GET /api/symbols and returns the active symbols in display order.
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.Error("list symbols failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list symbols"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	c.JSON(http.StatusOK, out)
}
