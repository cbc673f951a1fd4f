// Package events publishes change events for stored records.
//
// Services call Publisher.Publish after a successful create, update or
// delete. Publishing never blocks the request and never fails it: the
// Dispatcher hands each event to its sinks (Kafka, log) in background
// goroutines and only logs and counts failures.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campus-api/internal/observability/logging"
)

// Action is the kind of change an Event describes.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one change to one record.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Entity     string    `json:"entity"`
	Key        string    `json:"key"`
	Action     Action    `json:"action"`
	Record     any       `json:"record,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	RequestID  string    `json:"requestId,omitempty"`
}

// New builds an Event stamped with a fresh id, the current time and the
// request id carried by ctx.
func New(ctx context.Context, entityName string, key any, action Action, record any) Event {
	return Event{
		ID:         uuid.New(),
		Entity:     entityName,
		Key:        fmt.Sprint(key),
		Action:     action,
		Record:     record,
		OccurredAt: time.Now().UTC(),
		RequestID:  logging.RequestIDFromContext(ctx),
	}
}

// Publisher accepts events for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Sink delivers events to one destination.
// Implementations must be safe for concurrent use and respect ctx.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) {}
