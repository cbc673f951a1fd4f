// Package repository defines the persistence contracts used by the use case layer.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"campus-api/internal/domain/entity"
)

// Repository is the storage contract shared by every record type.
// T is the entity type and K the type of its key.
type Repository[T any, K comparable] interface {
	// FindAll returns every record ordered by key ascending.
	// Returns an empty slice (not nil) when the table is empty.
	FindAll(ctx context.Context) ([]*T, error)

	// FindByID returns the record with the given key.
	// Returns (nil, nil) if no such record exists.
	FindByID(ctx context.Context, id K) (*T, error)

	// Save inserts or updates rec and returns the stored record.
	// For generated keys a zero key means insert and the returned record
	// carries the new key. For natural keys Save is an upsert.
	Save(ctx context.Context, rec *T) (*T, error)

	// Delete removes the record with the given key.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, id K) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}

type (
	HelpRequestRepository           = Repository[entity.HelpRequest, int64]
	MenuItemRepository              = Repository[entity.MenuItem, int64]
	RecommendationRequestRepository = Repository[entity.RecommendationRequest, int64]
	OrganizationRepository          = Repository[entity.Organization, string]
	ArticleRepository               = Repository[entity.Article, int64]
	MenuItemReviewRepository        = Repository[entity.MenuItemReview, int64]
)

// Set bundles one repository per record type. Storage adapters build a Set
// so the composition root can swap drivers in one place.
type Set struct {
	HelpRequests           HelpRequestRepository
	MenuItems              MenuItemRepository
	RecommendationRequests RecommendationRequestRepository
	Organizations          OrganizationRepository
	Articles               ArticleRepository
	MenuItemReviews        MenuItemReviewRepository
}

// Counters returns a Count func per entity name, used by the record-count gauges.
func (s Set) Counters() map[string]func(context.Context) (int64, error) {
	return map[string]func(context.Context) (int64, error){
		entity.HelpRequestName:           s.HelpRequests.Count,
		entity.MenuItemName:              s.MenuItems.Count,
		entity.RecommendationRequestName: s.RecommendationRequests.Count,
		entity.OrganizationName:          s.Organizations.Count,
		entity.ArticleName:               s.Articles.Count,
		entity.MenuItemReviewName:        s.MenuItemReviews.Count,
	}
}
