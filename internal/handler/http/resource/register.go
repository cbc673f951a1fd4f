// Package resource mounts the CRUD routes of every record type.
// Each file wraps the generic crud.Handler for one record type so the
// routes carry their own API documentation.
package resource

import (
	"net/http"

	"campus-api/internal/handler/http/auth"
	ucrud "campus-api/internal/usecase/crud"
)

// Register mounts all six resources on mux using policy for role checks.
func Register(mux *http.ServeMux, svcs ucrud.Services, policy auth.Policy) {
	NewHelpRequestHandler(svcs.HelpRequests).Mount(mux, policy)
	NewMenuItemHandler(svcs.MenuItems).Mount(mux, policy)
	NewRecommendationRequestHandler(svcs.RecommendationRequests).Mount(mux, policy)
	NewOrganizationHandler(svcs.Organizations).Mount(mux, policy)
	NewArticleHandler(svcs.Articles).Mount(mux, policy)
	NewMenuItemReviewHandler(svcs.MenuItemReviews).Mount(mux, policy)
}
