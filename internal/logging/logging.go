// Package logging provides structured logging for the adapter.
//
// Logging Strategy:
// - JSON format on stderr: stdout must stay byte-clean because it carries
//   the wrapped command's own output to the MCP caller
// - Log levels configurable via KUBECTL_MCP_LOG_LEVEL (debug, info, warn, error)
// - A debug flag forces debug level regardless of the configured level
// - Default logger set globally for convenience, also returned for explicit passing
//
// Usage:
//
//	logger := logging.SetupLogger("info", false)
//	logger.Info("action description", "key", value, "component", "executor")
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// SetupLogger creates and configures a structured JSON logger writing to
// stderr. The level parameter accepts: "debug", "info", "warn", "error"
// (case-insensitive); invalid levels default to "info". When debug is
// true the level is forced to debug, matching the tracer's enable signal.
//
// The logger is also set as the default via slog.SetDefault, allowing
// use of the global slog.Info(), slog.Error(), etc. functions.
func SetupLogger(level string, debug bool) *slog.Logger {
	slogLevel := parseLevel(level)
	if debug {
		slogLevel = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	})
	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

// parseLevel converts a string log level to slog.Level.
// Accepts: "debug", "info", "warn", "error" (case-insensitive).
// Returns slog.LevelInfo for unrecognized values.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// WithComponent returns a logger with a pre-set component attribute.
// Useful for tagging all logs from a specific subsystem.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}
