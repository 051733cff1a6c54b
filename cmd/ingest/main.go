// Command ingest loads the instrument catalog from a JSON file:
//
//	[{"code":"AAPL","name":"Apple Inc.","market":"NASDAQ"}, ...]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"watchlist_backend/internal/feature/symbollist/adapters"
	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/transport/http/dto"
	"watchlist_backend/internal/feature/symbollist/usecase"
	infradb "watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/platform/logger"
)

func main() {
	file := flag.String("file", "symbols.json", "catalog JSON file")
	prune := flag.Bool("prune", false, "deactivate symbols missing from the file")
	flag.Parse()

	if err := run(*file, *prune); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(file string, prune bool) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	closer, err := logger.Init(logger.LoadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	symbols, err := readCatalog(file)
	if err != nil {
		return err
	}

	db, err := infradb.Open(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := usecase.NewImportUsecase(adapters.NewSymbolRepository(db)).Import(ctx, symbols, prune)
	if err != nil {
		return err
	}
	slog.Info("ingest ok", "imported", res.Imported, "skipped", res.Skipped, "deactivated", res.Deactivated)
	return nil
}

func readCatalog(path string) ([]entity.Symbol, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []dto.SymbolItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	symbols := make([]entity.Symbol, 0, len(items))
	for _, it := range items {
		symbols = append(symbols, entity.Symbol{Code: it.Code, Name: it.Name, Market: it.Market})
	}
	return symbols, nil
}
