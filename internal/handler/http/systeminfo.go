package http

import (
	"net/http"

	"campus-api/internal/handler/http/respond"
)

// SystemInfo is the public bootstrap document the front end loads first.
type SystemInfo struct {
	Version        string `json:"version"`
	Storage        string `json:"storage"`
	SwaggerEnabled bool   `json:"swaggerEnabled"`
}

// SystemInfoHandler serves GET /api/systemInfo without authentication.
type SystemInfoHandler struct {
	Info SystemInfo
}

// ServeHTTP godoc
// @Summary      System information
// @Description  Returns build version, storage driver and whether API docs are served
// @Tags         system
// @Produce      json
// @Success      200  {object}  SystemInfo
// @Router       /api/systemInfo [get]
func (h *SystemInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Info)
}
