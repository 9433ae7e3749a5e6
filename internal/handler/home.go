package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/middleware"
	"github.com/templui/soulsync/internal/ui"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

type homeResponse struct {
	Name    string            `json:"name"`
	Portals map[string]string `json:"portals"`
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	name := "SoulSync"
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		name = cfg.AppName
	}

	ui.JSON(w, http.StatusOK, homeResponse{
		Name: name,
		Portals: map[string]string{
			"user":         middleware.UserLogin,
			"professional": middleware.ProfessionalLogin,
			"admin":        middleware.AdminLogin,
		},
	})
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	ui.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	ui.Error(w, http.StatusNotFound, "page not found")
}
