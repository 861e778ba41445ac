package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/vault-world/internal/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	return New(cfg, os.Stderr)
}

// New builds a logger writing to out and sets it as the default.
func New(cfg *config.Config, out io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithPlayer adds the player slot to logger context
func WithPlayer(logger *slog.Logger, player int, name string) *slog.Logger {
	return logger.With("player", player, "player_name", name)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
