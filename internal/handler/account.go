package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type AccountHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	avatarService  *service.AvatarService
}

func NewAccountHandler(authService *service.AuthService, sessionService *service.SessionService, avatarService *service.AvatarService) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		sessionService: sessionService,
		avatarService:  avatarService,
	}
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionFrom(w, r); !ok {
		return
	}

	var update model.AccountUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Avatars go through the role-scoped slot, not the generic field
	update.Avatar = nil

	session, err := h.authService.UpdateUser(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, session)
}

type avatarRequest struct {
	Image string `json:"image"`
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req avatarRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, err = h.avatarService.Set(r.Context(), session.Role, session.ID, req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.sessionService.RefreshAvatar(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	err := h.avatarService.Delete(r.Context(), session.Role, session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.sessionService.RefreshAvatar(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, updated)
}
