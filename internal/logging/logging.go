// Package logging provides structured logging setup for studiodesk.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel converts a textual log level into a slog.Level.
// Unknown values fall back to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// NewLogger builds a logger writing to w (stderr when nil).
// Dev mode uses colorized text; otherwise JSON.
func NewLogger(w io.Writer, devMode bool, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if devMode {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(handler)
}

// Setup initializes the default slog logger. Logs go to stderr so command
// output on stdout stays clean.
func Setup(devMode bool, level slog.Level) {
	slog.SetDefault(NewLogger(os.Stderr, devMode, level))
}
