// Package crud implements the list/create/get/update/delete use cases shared
// by every record type. A Service is parameterised by the record type and
// its key; the per-type parts are the entity name and the Replace func that
// copies mutable fields.
package crud

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"campus-api/internal/domain/entity"
	"campus-api/internal/observability/metrics"
	"campus-api/internal/observability/tracing"
	"campus-api/internal/repository"
	"campus-api/internal/usecase/events"
)

// Service provides CRUD use cases for one record type.
type Service[T any, K comparable] struct {
	Repo repository.Repository[T, K]
	// Entity is the name used in not-found and delete messages.
	Entity string
	// Replace copies every mutable field of src onto dst.
	Replace func(dst, src *T)
	// Key returns the key of a stored record. Used for change events.
	Key func(*T) K
	// Events receives a change event after each successful write. Nil disables publishing.
	Events events.Publisher
}

// List returns every record ordered by key.
func (s *Service[T, K]) List(ctx context.Context) (recs []*T, err error) {
	ctx, done := s.begin(ctx, "list", nil)
	defer func() { done(err) }()

	recs, err = s.Repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Entity, err)
	}
	return recs, nil
}

// Create stores rec as a new record and returns it with its key set.
func (s *Service[T, K]) Create(ctx context.Context, rec *T) (saved *T, err error) {
	ctx, done := s.begin(ctx, "create", nil)
	defer func() { done(err) }()

	saved, err = s.Repo.Save(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.Entity, err)
	}
	s.publish(ctx, events.ActionCreated, s.keyOf(saved), saved)
	return saved, nil
}

// Get returns the record with key id or a *entity.NotFoundError.
func (s *Service[T, K]) Get(ctx context.Context, id K) (rec *T, err error) {
	ctx, done := s.begin(ctx, "get", id)
	defer func() { done(err) }()

	return s.find(ctx, id)
}

// Update overwrites every mutable field of the record with key id using
// the fields of in, saves it and returns the stored record. Nothing is
// saved when the record does not exist.
func (s *Service[T, K]) Update(ctx context.Context, id K, in *T) (saved *T, err error) {
	ctx, done := s.begin(ctx, "update", id)
	defer func() { done(err) }()

	cur, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Replace(cur, in)

	saved, err = s.Repo.Save(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.Entity, err)
	}
	s.publish(ctx, events.ActionUpdated, id, saved)
	return saved, nil
}

// Delete removes the record with key id. Nothing is deleted when the
// record does not exist.
func (s *Service[T, K]) Delete(ctx context.Context, id K) (err error) {
	ctx, done := s.begin(ctx, "delete", id)
	defer func() { done(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}
	if err = s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.Entity, err)
	}
	s.publish(ctx, events.ActionDeleted, id, nil)
	return nil
}

// DeletedMessage is the confirmation returned after a delete.
func (s *Service[T, K]) DeletedMessage(id K) string {
	return fmt.Sprintf("%s with id %v deleted", s.Entity, id)
}

func (s *Service[T, K]) find(ctx context.Context, id K) (*T, error) {
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Entity, err)
	}
	if rec == nil {
		return nil, entity.NewNotFoundError(s.Entity, id)
	}
	return rec, nil
}

func (s *Service[T, K]) keyOf(rec *T) any {
	if s.Key == nil {
		return nil
	}
	return s.Key(rec)
}

func (s *Service[T, K]) publish(ctx context.Context, action events.Action, key any, rec *T) {
	if s.Events == nil {
		return
	}
	var record any
	if rec != nil {
		record = rec
	}
	s.Events.Publish(ctx, events.New(ctx, s.Entity, key, action, record))
}

// begin starts a span for op and returns a func that ends it and records
// the operation metrics.
func (s *Service[T, K]) begin(ctx context.Context, op string, id any) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.GetTracer().Start(ctx, s.Entity+"."+op)
	span.SetAttributes(attribute.String("entity", s.Entity))
	if id != nil {
		span.SetAttributes(attribute.String("entity.key", fmt.Sprint(id)))
	}
	return ctx, func(err error) {
		result := metrics.ResultOf(err)
		if result == metrics.ResultError {
			span.RecordError(err)
			span.SetStatus(codes.Error, "operation failed")
		}
		span.SetAttributes(attribute.String("result", result))
		span.End()
		metrics.RecordCRUDOperation(s.Entity, op, result, time.Since(start))
	}
}
