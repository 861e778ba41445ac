package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string        `env:"LOG_LEVEL" envDefault:"info"`
	DataDir      string        `env:"VAULT_DATA_DIR" envDefault:"./data/thevault"`
	RedisURL     string        `env:"REDIS_URL"` // Empty disables result storage
	ResultTTL    time.Duration `env:"RESULT_TTL" envDefault:"24h"`

	LogLevel slog.Level `env:"-"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
