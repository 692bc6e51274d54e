package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Output      io.Writer // defaults to os.Stdout
	Level       string    // "debug", "info", "warn", "error"
	Format      string    // "json", "text"
	ServiceName string
}

// InitLogger initializes a structured slog.Logger and installs it as the
// process default. When ServiceName is set every record carries a "service"
// attribute.
func InitLogger(cfg LogConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.ServiceName))
	}
	slog.SetDefault(logger)

	return logger
}

// NopLogger returns a logger that discards everything. Handy in tests.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
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
