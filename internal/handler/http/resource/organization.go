package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// OrganizationHandler serves /api/ucsborganization.
type OrganizationHandler struct {
	crud.Handler[entity.Organization, string]
}

// NewOrganizationHandler returns a handler over svc.
func NewOrganizationHandler(svc crud.Service[entity.Organization, string]) OrganizationHandler {
	return OrganizationHandler{crud.Handler[entity.Organization, string]{
		Svc:       svc,
		Key:       params.StringKey("orgCode"),
		FromQuery: organizationFromQuery,
	}}
}

func organizationFromQuery(q url.Values) (*entity.Organization, error) {
	p := params.NewReader(q)
	rec := &entity.Organization{
		OrgCode:             p.String("orgCode"),
		OrgTranslationShort: p.String("orgTranslationShort"),
		OrgTranslation:      p.String("orgTranslation"),
		Inactive:            p.Bool("inactive"),
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	// orgCode is the key, so it must not be blank.
	if err := entity.RequireField("orgCode", rec.OrgCode); err != nil {
		return nil, err
	}
	return rec, nil
}

// Mount registers the routes under /api/ucsborganization.
func (h OrganizationHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceOrganization, policy.For(auth.ResourceOrganization), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List organizations
// @Tags         UCSBOrganizations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.Organization
// @Failure      403  {object}  map[string]string
// @Router       /api/ucsborganization/all [get]
func (h OrganizationHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create or replace an organization
// @Description  The organization code is the key, so posting an existing code replaces it
// @Tags         UCSBOrganizations
// @Security     BearerAuth
// @Produce      json
// @Param        orgCode              query  string  true  "organization code"
// @Param        orgTranslationShort  query  string  true  "short translation"
// @Param        orgTranslation       query  string  true  "translation"
// @Param        inactive             query  bool    true  "inactive"
// @Success      200  {object}  entity.Organization
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/ucsborganization/post [post]
func (h OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get an organization
// @Tags         UCSBOrganizations
// @Security     BearerAuth
// @Produce      json
// @Param        orgCode  query  string  true  "orgCode"
// @Success      200  {object}  entity.Organization
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsborganization [get]
func (h OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update an organization
// @Tags         UCSBOrganizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        orgCode    query  string  true  "orgCode"
// @Param        body  body   entity.Organization  true  "new field values"
// @Success      200  {object}  entity.Organization
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsborganization [put]
func (h OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete an organization
// @Tags         UCSBOrganizations
// @Security     BearerAuth
// @Produce      json
// @Param        orgCode  query  string  true  "orgCode"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/ucsborganization [delete]
func (h OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
