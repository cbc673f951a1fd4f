// Package notifier provides the event sinks the change-event dispatcher
// delivers to: a Kafka producer for downstream consumers and a log sink
// for local runs.
package notifier

import (
	"campus-api/internal/usecase/events"
)

var (
	_ events.Sink = (*KafkaSink)(nil)
	_ events.Sink = (*LogSink)(nil)
)
