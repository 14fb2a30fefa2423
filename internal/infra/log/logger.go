// Package log builds the process-wide slog logger from configuration.
package log

import (
	"log/slog"
	"os"
	"strings"

	"storefront/config"
)

// NewLogger creates a slog.Logger according to the configured level and
// format. Pretty selects the text handler for local development; production
// gets JSON.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.Env.Log.Level)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Env.ServiceName),
		slog.String("env", cfg.Env.Env),
	)

	return logger
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
