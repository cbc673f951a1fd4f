package sqlrepo

import (
	"campus-api/internal/domain/entity"
	"campus-api/internal/repository"
)

// Table names.
const (
	HelpRequestsTable           = "help_requests"
	MenuItemsTable              = "ucsb_dining_commons_menu_items"
	RecommendationRequestsTable = "recommendation_requests"
	OrganizationsTable          = "ucsb_organizations"
	ArticlesTable               = "articles"
	MenuItemReviewsTable        = "menu_item_reviews"
)

func idOf[T any](get func(*T) *int64) (func(*T) int64, func(*T, int64)) {
	return func(t *T) int64 { return *get(t) },
		func(t *T, id int64) { *get(t) = id }
}

// HelpRequestMapping stores help requests in help_requests with a generated id.
var HelpRequestMapping = func() Mapping[entity.HelpRequest, int64] {
	key, setKey := idOf(func(h *entity.HelpRequest) *int64 { return &h.ID })
	return Mapping[entity.HelpRequest, int64]{
		Table:     HelpRequestsTable,
		KeyColumn: "id",
		Columns: []string{
			"requester_email", "team_id", "table_or_breakout_room",
			"request_time", "explanation", "solved",
		},
		GeneratedKey: true,
		Key:          key,
		SetKey:       setKey,
		Values: func(h *entity.HelpRequest) []any {
			return []any{h.RequesterEmail, h.TeamID, h.TableOrBreakoutRoom,
				h.RequestTime, h.Explanation, h.Solved}
		},
		Scan: func(s Scanner) (*entity.HelpRequest, error) {
			var h entity.HelpRequest
			if err := s.Scan(&h.ID, &h.RequesterEmail, &h.TeamID, &h.TableOrBreakoutRoom,
				&h.RequestTime, &h.Explanation, &h.Solved); err != nil {
				return nil, err
			}
			return &h, nil
		},
	}
}()

// MenuItemMapping stores dining commons menu items with a generated id.
var MenuItemMapping = func() Mapping[entity.MenuItem, int64] {
	key, setKey := idOf(func(m *entity.MenuItem) *int64 { return &m.ID })
	return Mapping[entity.MenuItem, int64]{
		Table:        MenuItemsTable,
		KeyColumn:    "id",
		Columns:      []string{"dining_commons_code", "name", "station"},
		GeneratedKey: true,
		Key:          key,
		SetKey:       setKey,
		Values: func(m *entity.MenuItem) []any {
			return []any{m.DiningCommonsCode, m.Name, m.Station}
		},
		Scan: func(s Scanner) (*entity.MenuItem, error) {
			var m entity.MenuItem
			if err := s.Scan(&m.ID, &m.DiningCommonsCode, &m.Name, &m.Station); err != nil {
				return nil, err
			}
			return &m, nil
		},
	}
}()

// RecommendationRequestMapping stores recommendation requests with a generated id.
var RecommendationRequestMapping = func() Mapping[entity.RecommendationRequest, int64] {
	key, setKey := idOf(func(r *entity.RecommendationRequest) *int64 { return &r.ID })
	return Mapping[entity.RecommendationRequest, int64]{
		Table:     RecommendationRequestsTable,
		KeyColumn: "id",
		Columns: []string{
			"requester_email", "professor_email", "explanation",
			"date_requested", "date_needed", "done",
		},
		GeneratedKey: true,
		Key:          key,
		SetKey:       setKey,
		Values: func(r *entity.RecommendationRequest) []any {
			return []any{r.RequesterEmail, r.ProfessorEmail, r.Explanation,
				r.DateRequested, r.DateNeeded, r.Done}
		},
		Scan: func(s Scanner) (*entity.RecommendationRequest, error) {
			var r entity.RecommendationRequest
			if err := s.Scan(&r.ID, &r.RequesterEmail, &r.ProfessorEmail, &r.Explanation,
				&r.DateRequested, &r.DateNeeded, &r.Done); err != nil {
				return nil, err
			}
			return &r, nil
		},
	}
}()

// OrganizationMapping stores organizations keyed by the caller-supplied orgCode.
// Save on an existing code overwrites the row.
var OrganizationMapping = Mapping[entity.Organization, string]{
	Table:     OrganizationsTable,
	KeyColumn: "org_code",
	Columns:   []string{"org_translation_short", "org_translation", "inactive"},
	Key:       func(o *entity.Organization) string { return o.OrgCode },
	SetKey:    func(o *entity.Organization, code string) { o.OrgCode = code },
	Values: func(o *entity.Organization) []any {
		return []any{o.OrgTranslationShort, o.OrgTranslation, o.Inactive}
	},
	Scan: func(s Scanner) (*entity.Organization, error) {
		var o entity.Organization
		if err := s.Scan(&o.OrgCode, &o.OrgTranslationShort, &o.OrgTranslation, &o.Inactive); err != nil {
			return nil, err
		}
		return &o, nil
	},
}

// ArticleMapping stores articles with a generated id.
var ArticleMapping = func() Mapping[entity.Article, int64] {
	key, setKey := idOf(func(a *entity.Article) *int64 { return &a.ID })
	return Mapping[entity.Article, int64]{
		Table:        ArticlesTable,
		KeyColumn:    "id",
		Columns:      []string{"title", "url", "explanation", "email", "date_added"},
		GeneratedKey: true,
		Key:          key,
		SetKey:       setKey,
		Values: func(a *entity.Article) []any {
			return []any{a.Title, a.URL, a.Explanation, a.Email, a.DateAdded}
		},
		Scan: func(s Scanner) (*entity.Article, error) {
			var a entity.Article
			if err := s.Scan(&a.ID, &a.Title, &a.URL, &a.Explanation, &a.Email, &a.DateAdded); err != nil {
				return nil, err
			}
			return &a, nil
		},
	}
}()

// MenuItemReviewMapping stores menu item reviews with a generated id. The
// item id is not checked against the menu items table.
var MenuItemReviewMapping = func() Mapping[entity.MenuItemReview, int64] {
	key, setKey := idOf(func(r *entity.MenuItemReview) *int64 { return &r.ID })
	return Mapping[entity.MenuItemReview, int64]{
		Table:     MenuItemReviewsTable,
		KeyColumn: "id",
		Columns: []string{
			"item_id", "reviewer_email", "stars", "date_reviewed", "comments",
		},
		GeneratedKey: true,
		Key:          key,
		SetKey:       setKey,
		Values: func(r *entity.MenuItemReview) []any {
			return []any{r.ItemID, r.ReviewerEmail, r.Stars, r.DateReviewed, r.Comments}
		},
		Scan: func(s Scanner) (*entity.MenuItemReview, error) {
			var r entity.MenuItemReview
			if err := s.Scan(&r.ID, &r.ItemID, &r.ReviewerEmail, &r.Stars,
				&r.DateReviewed, &r.Comments); err != nil {
				return nil, err
			}
			return &r, nil
		},
	}
}()

// NewSet builds one Repo per record type over db.
func NewSet(db Executor, dialect Dialect) repository.Set {
	return repository.Set{
		HelpRequests:           New(db, dialect, HelpRequestMapping),
		MenuItems:              New(db, dialect, MenuItemMapping),
		RecommendationRequests: New(db, dialect, RecommendationRequestMapping),
		Organizations:          New(db, dialect, OrganizationMapping),
		Articles:               New(db, dialect, ArticleMapping),
		MenuItemReviews:        New(db, dialect, MenuItemReviewMapping),
	}
}
