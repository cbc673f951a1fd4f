package crud

import (
	"campus-api/internal/domain/entity"
	"campus-api/internal/repository"
	"campus-api/internal/usecase/events"
)

// Services holds one Service per record type.
type Services struct {
	HelpRequests           *Service[entity.HelpRequest, int64]
	MenuItems              *Service[entity.MenuItem, int64]
	RecommendationRequests *Service[entity.RecommendationRequest, int64]
	Organizations          *Service[entity.Organization, string]
	Articles               *Service[entity.Article, int64]
	MenuItemReviews        *Service[entity.MenuItemReview, int64]
}

// NewServices builds the services over repos. pub may be nil.
func NewServices(repos repository.Set, pub events.Publisher) Services {
	return Services{
		HelpRequests: &Service[entity.HelpRequest, int64]{
			Repo:    repos.HelpRequests,
			Entity:  entity.HelpRequestName,
			Replace: (*entity.HelpRequest).Replace,
			Key:     func(h *entity.HelpRequest) int64 { return h.ID },
			Events:  pub,
		},
		MenuItems: &Service[entity.MenuItem, int64]{
			Repo:    repos.MenuItems,
			Entity:  entity.MenuItemName,
			Replace: (*entity.MenuItem).Replace,
			Key:     func(m *entity.MenuItem) int64 { return m.ID },
			Events:  pub,
		},
		RecommendationRequests: &Service[entity.RecommendationRequest, int64]{
			Repo:    repos.RecommendationRequests,
			Entity:  entity.RecommendationRequestName,
			Replace: (*entity.RecommendationRequest).Replace,
			Key:     func(r *entity.RecommendationRequest) int64 { return r.ID },
			Events:  pub,
		},
		Organizations: &Service[entity.Organization, string]{
			Repo:    repos.Organizations,
			Entity:  entity.OrganizationName,
			Replace: (*entity.Organization).Replace,
			Key:     func(o *entity.Organization) string { return o.OrgCode },
			Events:  pub,
		},
		Articles: &Service[entity.Article, int64]{
			Repo:    repos.Articles,
			Entity:  entity.ArticleName,
			Replace: (*entity.Article).Replace,
			Key:     func(a *entity.Article) int64 { return a.ID },
			Events:  pub,
		},
		MenuItemReviews: &Service[entity.MenuItemReview, int64]{
			Repo:    repos.MenuItemReviews,
			Entity:  entity.MenuItemReviewName,
			Replace: (*entity.MenuItemReview).Replace,
			Key:     func(r *entity.MenuItemReview) int64 { return r.ID },
			Events:  pub,
		},
	}
}
