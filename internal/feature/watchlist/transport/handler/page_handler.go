package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	symbolentity "watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/presentation"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// Catalog lists the browsable instruments and names them.
type Catalog interface {
	CompanyNamer
	ListActiveSymbols(ctx context.Context) ([]symbolentity.Symbol, error)
}

// Flash codes carried in the query string after a form toggle. Only known
// codes are displayed.
var flashMessages = map[string]string{
	"invalid":     usecase.MsgInvalidData,
	"no-user":     usecase.MsgUserNotFound,
	"failed":      usecase.MsgUpdateFailed,
	"catalog-err": "Failed to load stocks",
}

func flashCode(res usecase.ToggleResult) string {
	switch res.Error {
	case usecase.MsgInvalidData:
		return "invalid"
	case usecase.MsgUserNotFound:
		return "no-user"
	default:
		return "failed"
	}
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	watchlist WatchlistUsecase
	enricher  Enricher
	catalog   Catalog
	renderer  *presentation.HTMLRenderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(watchlist WatchlistUsecase, enricher Enricher, catalog Catalog, renderer *presentation.HTMLRenderer) *PageHandler {
	return &PageHandler{watchlist: watchlist, enricher: enricher, catalog: catalog, renderer: renderer}
}

// Browse handles GET / and lists the catalog with watch buttons.
func (h *PageHandler) Browse(c *gin.Context) {
	ctx := c.Request.Context()
	email := jwtmw.Email(c)
	flash := flashMessages[c.Query("flash")]

	symbols, err := h.catalog.ListActiveSymbols(ctx)
	if err != nil {
		slog.Error("browse: list symbols failed", "error", err)
		flash = flashMessages["catalog-err"]
	}

	instruments := make([]presentation.Instrument, 0, len(symbols))
	for _, s := range symbols {
		instruments = append(instruments, presentation.Instrument{Symbol: s.Code, Name: s.Name, Market: s.Market})
	}
	watched := h.watchlist.ListSymbols(ctx, email)

	page := presentation.NewBrowsePage(email, instruments, watched, flash)
	h.render(c, func(buf *bytes.Buffer) error { return h.renderer.Browse(buf, page) })
}

// Watchlist handles GET /watchlist.
func (h *PageHandler) Watchlist(c *gin.Context) {
	ctx := c.Request.Context()
	email := jwtmw.Email(c)

	rows := h.enricher.Enrich(ctx, h.watchlist.ListEntries(ctx, email))
	page := presentation.NewWatchlistPage(email, presentation.BuildRows(rows, email), flashMessages[c.Query("flash")])
	h.render(c, func(buf *bytes.Buffer) error { return h.renderer.Watchlist(buf, page) })
}

// Toggle handles POST /watchlist/toggle from the page forms and redirects
// back to the local return_to path, with a flash code on failure.
func (h *PageHandler) Toggle(c *gin.Context) {
	var req dto.ToggleRequest
	res := usecase.ToggleResult{Error: usecase.MsgInvalidData}
	if err := c.ShouldBind(&req); err == nil {
		res = toggle(c, h.watchlist, h.catalog, req)
	}

	target := localPath(c.PostForm("return_to"), "/watchlist")
	if !res.Success {
		target = withFlash(target, flashCode(res))
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) render(c *gin.Context, exec func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		slog.Error("page render failed", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// localPath returns p when it is a same-site absolute path, else fallback.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return fallback
	}
	u, err := url.Parse(p)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return p
}

func withFlash(p, code string) string {
	u, err := url.Parse(p)
	if err != nil {
		return p
	}
	q := u.Query()
	q.Set("flash", code)
	u.RawQuery = q.Encode()
	return u.String()
}
