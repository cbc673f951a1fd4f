package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by Options.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options selects the level and encoding of a logger.
type Options struct {
	// Level is one of debug, info, warn or error. Unknown values mean info.
	Level string
	// Format is FormatJSON (default) or FormatText.
	Format string
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a logger writing to w.
// Source locations are attached only when debug logging is on.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	ho := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(opts.Format, FormatText) {
		h = slog.NewTextHandler(w, ho)
	} else {
		h = slog.NewJSONHandler(w, ho)
	}
	return slog.New(h).With(slog.String("service", "campus-api"))
}

// NewLogger builds the bootstrap logger from LOG_LEVEL and LOG_FORMAT.
// It is used before the full configuration has been loaded.
func NewLogger() *slog.Logger {
	return New(os.Stdout, Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// WithRequestID returns logger annotated with the request ID carried by ctx.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}
