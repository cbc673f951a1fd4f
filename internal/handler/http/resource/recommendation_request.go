package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// RecommendationRequestHandler serves /api/recommendationrequests.
type RecommendationRequestHandler struct {
	crud.Handler[entity.RecommendationRequest, int64]
}

// NewRecommendationRequestHandler returns a handler over svc.
func NewRecommendationRequestHandler(svc crud.Service[entity.RecommendationRequest, int64]) RecommendationRequestHandler {
	return RecommendationRequestHandler{crud.Handler[entity.RecommendationRequest, int64]{
		Svc:       svc,
		Key:       params.Int64Key("id"),
		FromQuery: recommendationRequestFromQuery,
	}}
}

func recommendationRequestFromQuery(q url.Values) (*entity.RecommendationRequest, error) {
	p := params.NewReader(q)
	rec := &entity.RecommendationRequest{
		RequesterEmail: p.String("requesterEmail"),
		ProfessorEmail: p.String("professorEmail"),
		Explanation:    p.String("explanation"),
		DateRequested:  p.LocalDateTime("dateRequested"),
		DateNeeded:     p.LocalDateTime("dateNeeded"),
		Done:           p.Bool("done"),
	}
	return rec, p.Err()
}

// Mount registers the routes under /api/recommendationrequests.
func (h RecommendationRequestHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceRecommendationRequest, policy.For(auth.ResourceRecommendationRequest), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List recommendation requests
// @Tags         RecommendationRequests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.RecommendationRequest
// @Failure      403  {object}  map[string]string
// @Router       /api/recommendationrequests/all [get]
func (h RecommendationRequestHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create a recommendation request
// @Tags         RecommendationRequests
// @Security     BearerAuth
// @Produce      json
// @Param        requesterEmail  query  string  true  "requester email"
// @Param        professorEmail  query  string  true  "professor email"
// @Param        explanation     query  string  true  "explanation"
// @Param        dateRequested   query  string  true  "date requested (ISO local date-time)"
// @Param        dateNeeded      query  string  true  "date needed (ISO local date-time)"
// @Param        done            query  bool    true  "done"
// @Success      200  {object}  entity.RecommendationRequest
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/recommendationrequests/post [post]
func (h RecommendationRequestHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get a recommendation request
// @Tags         RecommendationRequests
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  entity.RecommendationRequest
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/recommendationrequests [get]
func (h RecommendationRequestHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update a recommendation request
// @Tags         RecommendationRequests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query  int  true  "id"
// @Param        body  body   entity.RecommendationRequest  true  "new field values"
// @Success      200  {object}  entity.RecommendationRequest
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/recommendationrequests [put]
func (h RecommendationRequestHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete a recommendation request
// @Tags         RecommendationRequests
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/recommendationrequests [delete]
func (h RecommendationRequestHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
