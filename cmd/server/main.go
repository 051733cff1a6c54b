package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/config"
	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	authadapters "watchlist_backend/internal/feature/auth/adapters"
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	authusecase "watchlist_backend/internal/feature/auth/usecase"
	symbollistadapters "watchlist_backend/internal/feature/symbollist/adapters"
	symbollisthandler "watchlist_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "watchlist_backend/internal/feature/symbollist/usecase"
	watchlistadapters "watchlist_backend/internal/feature/watchlist/adapters"
	"watchlist_backend/internal/feature/watchlist/presentation"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "watchlist_backend/internal/feature/watchlist/usecase"
	infradb "watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	"watchlist_backend/internal/platform/http/handler"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/logger"
	infraredis "watchlist_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	closer, err := logger.Init(logger.LoadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.Open(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	checks := map[string]handler.Check{"db": sqlDB.PingContext}

	// Redis
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfig(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without quote cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	entryRepo := watchlistadapters.NewWatchlistGorm(db)
	userDir := watchlistadapters.NewUserDirectoryGorm(db)
	finnhubCfg := finnhub.LoadConfig()
	if finnhubCfg.APIKey == "" {
		slog.Warn("FINNHUB_API_KEY is not set. Quotes will be unavailable.")
	}
	quotes := di.NewQuoteSource(finnhubCfg, rdb, cfg.QuoteCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(jwtCfg.Secret, jwtCfg.Expiration))
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(entryRepo, userDir)
	enrichUC := watchlistusecase.NewEnrichUsecase(quotes, cfg.QuoteConcurrency)

	// Handler
	renderer, err := presentation.NewHTMLRenderer()
	if err != nil {
		return err
	}
	r := router.NewRouter(cfg, router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC, jwtCfg.Expiration, cfg.CookieSecure),
		Symbol:    symbollisthandler.NewSymbolHandler(symbolUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC, enrichUC, symbolUC),
		Pages:     watchlisthandler.NewPageHandler(watchlistUC, enrichUC, symbolUC, renderer),
		Checks:    checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
