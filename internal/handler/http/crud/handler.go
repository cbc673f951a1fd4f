// Package crud serves the five routes every record type exposes:
// list, create from query parameters, get, update from a JSON body and
// delete. Handler is generic over the record type and its key.
package crud

import (
	"context"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/params"
	"campus-api/internal/handler/http/respond"
)

// Service is the use case contract behind a Handler.
type Service[T any, K comparable] interface {
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Get(ctx context.Context, id K) (*T, error)
	Update(ctx context.Context, id K, in *T) (*T, error)
	Delete(ctx context.Context, id K) error
	DeletedMessage(id K) string
}

// Handler serves one record type.
type Handler[T any, K comparable] struct {
	Svc Service[T, K]
	// Key names and parses the query parameter carrying the record key.
	Key params.Key[K]
	// FromQuery builds a new record from the create query parameters.
	FromQuery func(q url.Values) (*T, error)
}

// List writes every record.
func (h Handler[T, K]) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Svc.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	if recs == nil {
		recs = []*T{}
	}
	respond.JSON(w, http.StatusOK, recs)
}

// Create builds a record from the query string, saves it and writes it back
// with its key.
func (h Handler[T, K]) Create(w http.ResponseWriter, r *http.Request) {
	rec, err := h.FromQuery(r.URL.Query())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	saved, err := h.Svc.Create(r.Context(), rec)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, saved)
}

// Get writes the record named by the key parameter.
func (h Handler[T, K]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.Key.From(r.URL.Query())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	rec, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, rec)
}

// Update overwrites the record named by the key parameter with the JSON body.
func (h Handler[T, K]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.Key.From(r.URL.Query())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.FromError(w, &entity.ValidationError{Field: "body", Message: "must be a valid JSON record"})
		return
	}

	saved, err := h.Svc.Update(r.Context(), id, &in)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, saved)
}

// Delete removes the record named by the key parameter.
func (h Handler[T, K]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.Key.From(r.URL.Query())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.Message(w, h.Svc.DeletedMessage(id))
}

// Routes returns the handler's five routes for Mount.
func (h Handler[T, K]) Routes() Routes {
	return Routes{
		List:   h.List,
		Create: h.Create,
		Get:    h.Get,
		Update: h.Update,
		Delete: h.Delete,
	}
}
