// Package db opens the gorm connection and owns the schema migrations.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	symbolentity "watchlist_backend/internal/feature/symbollist/domain/entity"
	watchlistadapters "watchlist_backend/internal/feature/watchlist/adapters"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	connectTimeout = 60 * time.Second
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config describes how to reach the database.
type Config struct {
	Driver        string // "postgres" (default) or "sqlite"
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	Path          string // sqlite file, ":memory:" for an in-memory database
	RunMigrations bool
}

// LoadConfigFromEnv reads the DB_* variables and RUN_MIGRATIONS.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:        os.Getenv("DB_DRIVER"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       os.Getenv("DB_SSLMODE"),
		Path:          os.Getenv("DB_PATH"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.Path == "" {
		cfg.Path = "watchlist.db"
	}
	return cfg
}

// BuildDSN returns the driver-specific connection string.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// gormConfig enables error translation so unique violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// opener returns the gorm open function for the configured driver.
func opener(driver string) (func(dsn string) (*gorm.DB, error), error) {
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gormConfig())
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database and migrates it when RunMigrations is set.
func Open(cfg Config) (*gorm.DB, error) {
	open, err := opener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the users, symbols and watchlist_entries tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&symbolentity.Symbol{},
		&watchlistadapters.WatchlistEntryModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
