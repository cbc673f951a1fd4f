package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// MenuItemHandler serves /api/ucsbdiningcommonsmenuitem.
type MenuItemHandler struct {
	crud.Handler[entity.MenuItem, int64]
}

// NewMenuItemHandler returns a handler over svc.
func NewMenuItemHandler(svc crud.Service[entity.MenuItem, int64]) MenuItemHandler {
	return MenuItemHandler{crud.Handler[entity.MenuItem, int64]{
		Svc:       svc,
		Key:       params.Int64Key("id"),
		FromQuery: menuItemFromQuery,
	}}
}

func menuItemFromQuery(q url.Values) (*entity.MenuItem, error) {
	p := params.NewReader(q)
	rec := &entity.MenuItem{
		DiningCommonsCode: p.String("diningCommonsCode"),
		Name:              p.String("name"),
		Station:           p.String("station"),
	}
	return rec, p.Err()
}

// Mount registers the routes under /api/ucsbdiningcommonsmenuitem.
func (h MenuItemHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceMenuItem, policy.For(auth.ResourceMenuItem), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List menu items
// @Tags         UCSBDiningCommonsMenuItems
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.MenuItem
// @Failure      403  {object}  map[string]string
// @Router       /api/ucsbdiningcommonsmenuitem/all [get]
func (h MenuItemHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create a menu item
// @Tags         UCSBDiningCommonsMenuItems
// @Security     BearerAuth
// @Produce      json
// @Param        diningCommonsCode  query  string  true  "dining commons code"
// @Param        name               query  string  true  "name"
// @Param        station            query  string  true  "station"
// @Success      200  {object}  entity.MenuItem
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/ucsbdiningcommonsmenuitem/post [post]
func (h MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get a menu item
// @Tags         UCSBDiningCommonsMenuItems
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  entity.MenuItem
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsbdiningcommonsmenuitem [get]
func (h MenuItemHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update a menu item
// @Tags         UCSBDiningCommonsMenuItems
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query  int  true  "id"
// @Param        body  body   entity.MenuItem  true  "new field values"
// @Success      200  {object}  entity.MenuItem
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsbdiningcommonsmenuitem [put]
func (h MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete a menu item
// @Tags         UCSBDiningCommonsMenuItems
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsbdiningcommonsmenuitem [delete]
func (h MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
