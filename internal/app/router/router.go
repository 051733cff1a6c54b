// Package router assembles the HTTP routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/app/config"
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	symbollisthandler "watchlist_backend/internal/feature/symbollist/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/platform/http/handler"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Symbol    *symbollisthandler.SymbolHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Pages     *watchlisthandler.PageHandler
	Checks    map[string]handler.Check
}

func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	r := gin.Default()

	// Browsers on other origins need CORS; same-origin pages and the CLI do not.
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// No authentication
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(h.Checks))
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	// JSON API: 401 without a valid token
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired())
	{
		api.GET("/symbols", h.Symbol.List)
		api.GET("/watchlist", h.Watchlist.List)
		api.GET("/watchlist/symbols", h.Watchlist.Symbols)
		api.GET("/watchlist/symbols/:symbol", h.Watchlist.Membership)
		api.POST("/watchlist/toggle", h.Watchlist.Toggle)
	}

	// Pages: redirect to sign-in without a valid session
	pages := r.Group("/")
	pages.Use(jwtmw.SessionRequired(cfg.SignInPath))
	{
		pages.GET("/", h.Pages.Browse)
		pages.GET("/watchlist", h.Pages.Watchlist)
		pages.POST("/watchlist/toggle", h.Pages.Toggle)
	}

	return r
}
