package resource

import (
	"net/http"
	"net/url"

	"campus-api/internal/domain/entity"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/crud"
	"campus-api/internal/handler/http/params"
)

// ArticleHandler serves /api/articles.
type ArticleHandler struct {
	crud.Handler[entity.Article, int64]
}

// NewArticleHandler returns a handler over svc.
func NewArticleHandler(svc crud.Service[entity.Article, int64]) ArticleHandler {
	return ArticleHandler{crud.Handler[entity.Article, int64]{
		Svc:       svc,
		Key:       params.Int64Key("id"),
		FromQuery: articleFromQuery,
	}}
}

func articleFromQuery(q url.Values) (*entity.Article, error) {
	p := params.NewReader(q)
	rec := &entity.Article{
		Title:       p.String("title"),
		URL:         p.String("url"),
		Explanation: p.String("explanation"),
		Email:       p.String("email"),
		DateAdded:   p.LocalDateTime("dateAdded"),
	}
	return rec, p.Err()
}

// Mount registers the routes under /api/articles.
func (h ArticleHandler) Mount(mux *http.ServeMux, policy auth.Policy) {
	crud.Mount(mux, auth.ResourceArticle, policy.For(auth.ResourceArticle), crud.Routes{
		List: h.List, Create: h.Create, Get: h.Get, Update: h.Update, Delete: h.Delete,
	})
}

// List godoc
// @Summary      List articles
// @Tags         Articles
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   entity.Article
// @Failure      403  {object}  map[string]string
// @Router       /api/articles/all [get]
func (h ArticleHandler) List(w http.ResponseWriter, r *http.Request) { h.Handler.List(w, r) }

// Create godoc
// @Summary      Create an article
// @Tags         Articles
// @Security     BearerAuth
// @Produce      json
// @Param        title        query  string  true  "title"
// @Param        url          query  string  true  "url"
// @Param        explanation  query  string  true  "explanation"
// @Param        email        query  string  true  "email of the poster"
// @Param        dateAdded    query  string  true  "date added (ISO local date-time)"
// @Success      200  {object}  entity.Article
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/articles/post [post]
func (h ArticleHandler) Create(w http.ResponseWriter, r *http.Request) { h.Handler.Create(w, r) }

// Get godoc
// @Summary      Get an article
// @Tags         Articles
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  entity.Article
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/articles [get]
func (h ArticleHandler) Get(w http.ResponseWriter, r *http.Request) { h.Handler.Get(w, r) }

// Update godoc
// @Summary      Update an article
// @Tags         Articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query  int  true  "id"
// @Param        body  body   entity.Article  true  "new field values"
// @Success      200  {object}  entity.Article
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/articles [put]
func (h ArticleHandler) Update(w http.ResponseWriter, r *http.Request) { h.Handler.Update(w, r) }

// Delete godoc
// @Summary      Delete an article
// @Tags         Articles
// @Security     BearerAuth
// @Produce      json
// @Param        id  query  int  true  "id"
// @Success      200  {object}  respond.MessageBody
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  respond.NotFoundBody
// @Router       /api/articles [delete]
func (h ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) { h.Handler.Delete(w, r) }
