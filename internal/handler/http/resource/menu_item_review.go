package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// MenuItemReviewHandler serves /api/menuitemreviews.
type MenuItemReviewHandler struct {
	crud.Handler[entity.MenuItemReview, int64]
}

// NewMenuItemReviewHandler returns a handler over svc.
func NewMenuItemReviewHandler(svc crud.Service[entity.MenuItemReview, int64]) MenuItemReviewHandler {
	return MenuItemReviewHandler{crud.Handler[entity.MenuItemReview, int64]{
		Svc:       svc,
		Key:       params.Int64Key("id"),
		FromQuery: menuItemReviewFromQuery,
	}}
}

func menuItemReviewFromQuery(q url.Values) (*entity.MenuItemReview, error) {
	p := params.NewReader(q)
	rec := &entity.MenuItemReview{
		ItemID:        p.Int64("itemId"),
		ReviewerEmail: p.String("reviewerEmail"),
		Stars:         p.Int("stars"),
		DateReviewed:  p.LocalDateTime("dateReviewed"),
		Comments:      p.String("comments"),
	}
	return rec, p.Err()
}

// Mount registers the routes under /api/menuitemreviews.
func (h MenuItemReviewHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceMenuItemReview, policy.For(auth.ResourceMenuItemReview), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List menu item reviews
// @Tags         MenuItemReviews
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.MenuItemReview
// @Failure      403  {object}  map[string]string
// @Router       /api/menuitemreviews/all [get]
func (h MenuItemReviewHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create a menu item review
// @Tags         MenuItemReviews
// @Security     BearerAuth
// @Produce      json
// @Param        itemId         query  int     true  "menu item id"
// @Param        reviewerEmail  query  string  true  "reviewer email"
// @Param        stars          query  int     true  "stars"
// @Param        dateReviewed   query  string  true  "date reviewed (ISO local date-time)"
// @Param        comments       query  string  true  "comments"
// @Success      200  {object}  entity.MenuItemReview
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/menuitemreviews/post [post]
func (h MenuItemReviewHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get a menu item review
// @Tags         MenuItemReviews
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  entity.MenuItemReview
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/menuitemreviews [get]
func (h MenuItemReviewHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update a menu item review
// @Tags         MenuItemReviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query  int  true  "id"
// @Param        body  body   entity.MenuItemReview  true  "new field values"
// @Success      200  {object}  entity.MenuItemReview
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/menuitemreviews [put]
func (h MenuItemReviewHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete a menu item review
// @Tags         MenuItemReviews
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/menuitemreviews [delete]
func (h MenuItemReviewHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
