// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	File   string // rotated log file, empty for stderr only
}

// LoadConfig reads LOG_LEVEL, LOG_FORMAT and LOG_FILE.
func LoadConfig() Config {
	return Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		File:   os.Getenv("LOG_FILE"),
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// New builds a logger writing to out, and additionally to a rotating file
// when cfg.File is set. The returned closer releases the file.
func New(cfg Config, out io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxAge:     14, // days
			MaxBackups: 5,
			Compress:   true,
		}
		out = io.MultiWriter(out, file)
		closer = file
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return slog.New(h), closer, nil
}

// Init installs the logger built from cfg as the slog default.
func Init(cfg Config) (io.Closer, error) {
	l, closer, err := New(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	slog.Info("Logger initialized", "level", cfg.Level, "format", cfg.Format, "file", cfg.File)
	return closer, nil
}
