package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/freeup86/trainingpulse-sub004/internal/config"
)

const serviceName = "trainingpulse"

// NewLogger builds the process logger on stderr and installs it as the slog
// default. Every record carries the service name so bulk engine logs can be
// told apart from the web tier in a shared sink.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With(slog.String("service", serviceName))
}

// parseLevel accepts slog's own names (debug, info, warn, error, with
// optional offsets such as "warn+2"). Anything else falls back to info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
