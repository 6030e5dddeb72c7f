package logging

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs each API call.
type Transport struct {
	// Base performs the request. http.DefaultTransport when nil.
	Base http.RoundTripper
	// Logger receives the entries. slog.Default() when nil.
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogAttrs(req.Context(), slog.LevelWarn, "api request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("duration", duration.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	logger.LogAttrs(req.Context(), level, "api request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("duration", duration.String()),
	)
	return resp, nil
}
