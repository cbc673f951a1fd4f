// Package memory implements repository.Repository in process memory.
// Used by tests and by STORAGE_DRIVER=memory for local runs.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"campus-api/internal/domain/entity"
	"campus-api/internal/repository"
)

// Keys tells Repo how to read and assign a record's key.
type Keys[T any, K cmp.Ordered] struct {
	Get func(*T) K
	Set func(*T, K)
	// Next returns the key for the n-th generated record. Nil for natural keys.
	Next func(n int64) K
}

// Repo stores copies of records keyed by K. Callers never share memory with
// the stored values.
type Repo[T any, K cmp.Ordered] struct {
	mu   sync.RWMutex
	rows map[K]T
	keys Keys[T, K]
	seq  int64
}

// New returns an empty Repo.
func New[T any, K cmp.Ordered](keys Keys[T, K]) *Repo[T, K] {
	return &Repo[T, K]{rows: make(map[K]T), keys: keys}
}

// FindAll returns every record ordered by key.
func (r *Repo[T, K]) FindAll(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]K, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		rec := r.rows[id]
		out = append(out, &rec)
	}
	return out, nil
}

// FindByID returns (nil, nil) on a miss.
func (r *Repo[T, K]) FindByID(ctx context.Context, id K) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	rec, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Save inserts when the key is zero and keys are generated, otherwise it
// stores rec under its key. Nothing is stored once ctx is done.
func (r *Repo[T, K]) Save(ctx context.Context, rec *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	var zero K
	if r.keys.Next != nil && r.keys.Get(&stored) == zero {
		r.seq++
		r.keys.Set(&stored, r.keys.Next(r.seq))
	}
	r.rows[r.keys.Get(&stored)] = stored
	out := stored
	return &out, nil
}

// Delete removes id. Missing keys are ignored. Nothing is removed once ctx
// is done.
func (r *Repo[T, K]) Delete(ctx context.Context, id K) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.rows, id)
	r.mu.Unlock()
	return nil
}

// Count returns the number of stored records.
func (r *Repo[T, K]) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func sequential(n int64) int64 { return n }

func idKeys[T any](field func(*T) *int64) Keys[T, int64] {
	return Keys[T, int64]{
		Get:  func(t *T) int64 { return *field(t) },
		Set:  func(t *T, id int64) { *field(t) = id },
		Next: sequential,
	}
}

// NewRepos returns an empty in-memory repository.Set.
func NewRepos() repository.Set {
	return repository.Set{
		HelpRequests: New(idKeys(func(h *entity.HelpRequest) *int64 { return &h.ID })),
		MenuItems:    New(idKeys(func(m *entity.MenuItem) *int64 { return &m.ID })),
		RecommendationRequests: New(idKeys(func(r *entity.RecommendationRequest) *int64 {
			return &r.ID
		})),
		Organizations: New(Keys[entity.Organization, string]{
			Get: func(o *entity.Organization) string { return o.OrgCode },
			Set: func(o *entity.Organization, code string) { o.OrgCode = code },
		}),
		Articles:        New(idKeys(func(a *entity.Article) *int64 { return &a.ID })),
		MenuItemReviews: New(idKeys(func(m *entity.MenuItemReview) *int64 { return &m.ID })),
	}
}
