package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger in production and a text logger elsewhere.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
