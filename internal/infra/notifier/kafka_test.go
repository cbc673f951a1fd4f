package notifier

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"campus-api/internal/observability/logging"
	"campus-api/internal/usecase/events"
)

/* ───────── テスト用 writer ───────── */

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

/* ───────── テスト ───────── */

func TestKafkaSink_Send(t *testing.T) {
	w := &fakeWriter{}
	sink := newKafkaSink(w, KafkaConfig{Topic: "campus-api.changes"})

	ctx := logging.ContextWithRequestID(context.Background(), "req-9")
	ev := events.New(ctx, "UCSBOrganization", "ACM", events.ActionUpdated, map[string]any{"orgCode": "ACM"})

	require.NoError(t, sink.Send(ctx, ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "UCSBOrganization:ACM", string(msg.Key))
	assert.Equal(t, "updated", headerValue(msg, "action"))
	assert.Equal(t, "UCSBOrganization", headerValue(msg, "entity"))
	assert.Equal(t, "req-9", headerValue(msg, "request_id"))
	assert.Equal(t, ev.OccurredAt, msg.Time)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID.String(), decoded["id"])
	assert.Equal(t, "ACM", decoded["key"])
	assert.Equal(t, map[string]any{"orgCode": "ACM"}, decoded["record"])
}

func TestKafkaSink_SendOmitsEmptyRequestID(t *testing.T) {
	w := &fakeWriter{}
	sink := newKafkaSink(w, KafkaConfig{})

	require.NoError(t, sink.Send(context.Background(), events.New(context.Background(), "Article", 3, events.ActionDeleted, nil)))

	require.Len(t, w.msgs, 1)
	assert.Len(t, w.msgs[0].Headers, 2)
	assert.NotContains(t, string(w.msgs[0].Value), "record")
}

func TestKafkaSink_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	sink := newKafkaSink(w, KafkaConfig{})

	err := sink.Send(context.Background(), events.New(context.Background(), "Article", 1, events.ActionCreated, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka write")
	assert.ErrorIs(t, err, w.err)
}

func TestKafkaSink_Throttle(t *testing.T) {
	w := &fakeWriter{}
	sink := newKafkaSink(w, KafkaConfig{MaxPerSecond: 1, Burst: 1})

	ev := events.New(context.Background(), "Article", 1, events.ActionCreated, nil)
	require.NoError(t, sink.Send(context.Background(), ev))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := sink.Send(ctx, ev)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka throttle")
	assert.Len(t, w.msgs, 1)
}

func TestKafkaSink_NameAndClose(t *testing.T) {
	w := &fakeWriter{}
	sink := newKafkaSink(w, KafkaConfig{})

	assert.Equal(t, "kafka", sink.Name())
	require.NoError(t, sink.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaSink_BuildsWriter(t *testing.T) {
	sink := NewKafkaSink(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t"})

	kw, ok := sink.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "t", kw.Topic)
	assert.Equal(t, 5*time.Second, kw.WriteTimeout)
	assert.Nil(t, sink.limiter)
	require.NoError(t, sink.Close())
}

func TestNewKafkaSink_Throttled(t *testing.T) {
	sink := NewKafkaSink(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t", MaxPerSecond: 50, Burst: 25})

	require.NotNil(t, sink.limiter)
	assert.Equal(t, rate.Limit(50), sink.limiter.Limit())
	assert.Equal(t, 25, sink.limiter.Burst())
	require.NoError(t, sink.Close())
}

func TestLogSink_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewLogSink(logger, slog.LevelInfo)

	ev := events.New(context.Background(), "HelpRequest", 5, events.ActionCreated, nil)
	require.NoError(t, sink.Send(context.Background(), ev))

	out := buf.String()
	assert.Equal(t, "log", sink.Name())
	assert.True(t, strings.Contains(out, `"entity":"HelpRequest"`), out)
	assert.Contains(t, out, `"key":"5"`)
	assert.Contains(t, out, `"action":"created"`)
}

func TestNewLogSink_DefaultLogger(t *testing.T) {
	sink := NewLogSink(nil, slog.LevelDebug)
	assert.NotNil(t, sink.logger)
}
