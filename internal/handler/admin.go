package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type AdminHandler struct {
	authService *service.AuthService
}

func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type adminDashboardResponse struct {
	Accounts      int `json:"accounts"`
	Professionals int `json:"professionals"`
	Pending       int `json:"pending"`
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.authService.Accounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	pending, err := h.authService.PendingProfessionals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := adminDashboardResponse{Accounts: len(accounts), Pending: len(pending)}
	for _, account := range accounts {
		if account.Role == model.RoleProfessional && account.Verified {
			resp.Professionals++
		}
	}
	ui.JSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.authService.PendingProfessionals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, pending)
}

func (h *AdminHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.authService.Accounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, accounts)
}

func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	account, err := h.authService.VerifyProfessional(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if account == nil {
		ui.Error(w, http.StatusNotFound, "no pending professional with this id")
		return
	}
	ui.JSON(w, http.StatusOK, account)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	entry, err := h.authService.RejectProfessional(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entry == nil {
		ui.Error(w, http.StatusNotFound, "no pending professional with this id")
		return
	}
	ui.JSON(w, http.StatusOK, entry)
}
