package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// HelpRequestHandler serves /api/helprequest.
type HelpRequestHandler struct {
	crud.Handler[entity.HelpRequest, int64]
}

// NewHelpRequestHandler returns a handler over svc.
func NewHelpRequestHandler(svc crud.Service[entity.HelpRequest, int64]) HelpRequestHandler {
	return HelpRequestHandler{crud.Handler[entity.HelpRequest, int64]{
		Svc:       svc,
		Key:       params.Int64Key("id"),
		FromQuery: helpRequestFromQuery,
	}}
}

func helpRequestFromQuery(q url.Values) (*entity.HelpRequest, error) {
	p := params.NewReader(q)
	rec := &entity.HelpRequest{
		RequesterEmail:      p.String("requesterEmail"),
		TeamID:              p.String("teamId"),
		TableOrBreakoutRoom: p.String("tableOrBreakoutRoom"),
		RequestTime:         p.LocalDateTime("requestTime"),
		Explanation:         p.String("explanation"),
		Solved:              p.Bool("solved"),
	}
	return rec, p.Err()
}

// Mount registers the routes under /api/helprequest.
func (h HelpRequestHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceHelpRequest, policy.For(auth.ResourceHelpRequest), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List help requests
// @Tags         HelpRequests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.HelpRequest
// @Failure      403  {object}  map[string]string
// @Router       /api/helprequest/all [get]
func (h HelpRequestHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create a help request
// @Tags         HelpRequests
// @Security     BearerAuth
// @Produce      json
// @Param        requesterEmail       query  string  true  "requester email"
// @Param        teamId               query  string  true  "team id"
// @Param        tableOrBreakoutRoom  query  string  true  "table or breakout room"
// @Param        requestTime          query  string  true  "request time (ISO local date-time)"
// @Param        explanation          query  string  true  "explanation"
// @Param        solved               query  bool    true  "solved"
// @Success      200  {object}  entity.HelpRequest
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/helprequest/post [post]
func (h HelpRequestHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get a help request
// @Tags         HelpRequests
// @Security     BearerAuth
// @Produce      json
// @Param        id   query  int  true  "id"
// @Success      200  {object}  entity.HelpRequest
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/helprequest [get]
func (h HelpRequestHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update a help request
// @Tags         HelpRequests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query  int                 true  "id"
// @Param        body  body   entity.HelpRequest  true  "new field values"
// @Success      200  {object}  entity.HelpRequest
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/helprequest [put]
func (h HelpRequestHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete a help request
// @Tags         HelpRequests
// @Security     BearerAuth
// @Produce      json
// @Param        id   query  int  true  "id"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/helprequest [delete]
func (h HelpRequestHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
