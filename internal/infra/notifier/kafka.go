package notifier

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	"campus-api/internal/usecase/events"
)

// KafkaConfig configures the Kafka sink.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	// MaxPerSecond caps the produce rate. Zero means unlimited.
	MaxPerSecond float64
	Burst        int
}

// messageWriter is the subset of *kafka.Writer used by KafkaSink.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink produces one message per event. Messages are keyed by
// "<entity>:<key>" so every change to a record lands on the same partition
// and consumers see them in order.
type KafkaSink struct {
	writer  messageWriter
	limiter *rate.Limiter
}

// NewKafkaSink builds a sink backed by a kafka.Writer.
func NewKafkaSink(cfg KafkaConfig) *KafkaSink {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return newKafkaSink(w, cfg)
}

func newKafkaSink(w messageWriter, cfg KafkaConfig) *KafkaSink {
	s := &KafkaSink{writer: w}
	if cfg.MaxPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), burst)
	}
	return s
}

// Name implements events.Sink.
func (s *KafkaSink) Name() string { return "kafka" }

// Send implements events.Sink.
func (s *KafkaSink) Send(ctx context.Context, ev events.Event) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("kafka throttle: %w", err)
		}
	}

	msg, err := toMessage(ev)
	if err != nil {
		return err
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes broker connections.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func toMessage(ev events.Event) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	headers := []kafka.Header{
		{Key: "entity", Value: []byte(ev.Entity)},
		{Key: "action", Value: []byte(ev.Action)},
	}
	if ev.RequestID != "" {
		headers = append(headers, kafka.Header{Key: "request_id", Value: []byte(ev.RequestID)})
	}
	return kafka.Message{
		Key:     []byte(ev.Entity + ":" + ev.Key),
		Value:   payload,
		Headers: headers,
		Time:    ev.OccurredAt,
	}, nil
}
