package notifier

import (
	"context"
	"log/slog"

	"campus-api/internal/usecase/events"
)

// LogSink writes every event to a logger. It is the default sink when no
// Kafka brokers are configured.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink returns a LogSink logging at level. A nil logger means slog.Default().
func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger, level: level}
}

// Name implements events.Sink.
func (s *LogSink) Name() string { return "log" }

// Send implements events.Sink.
func (s *LogSink) Send(ctx context.Context, ev events.Event) error {
	s.logger.LogAttrs(ctx, s.level, "record changed",
		slog.String("event_id", ev.ID.String()),
		slog.String("entity", ev.Entity),
		slog.String("key", ev.Key),
		slog.String("action", string(ev.Action)),
		slog.String("request_id", ev.RequestID),
	)
	return nil
}
