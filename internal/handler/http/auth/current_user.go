package auth

import (
	"net/http"

	"campus-api/internal/handler/http/respond"
)

// CurrentUser is the body of GET /api/currentUser.
type CurrentUser struct {
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
	Admin   bool     `json:"admin"`
}

// CurrentUserHandler returns the calling principal. Mount it behind
// RequireRole(RoleUser).
type CurrentUserHandler struct{}

// ServeHTTP godoc
// @Summary      Current user
// @Description  Returns the subject and roles of the caller
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.CurrentUser
// @Failure      403  {object}  map[string]string
// @Router       /api/currentUser [get]
func (CurrentUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := FromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusForbidden, errForbidden)
		return
	}
	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}
	respond.JSON(w, http.StatusOK, CurrentUser{
		Subject: p.Subject,
		Roles:   roles,
		Admin:   p.IsAdmin(),
	})
}
