package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type notificationsResponse struct {
	Notifications []*model.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	list, err := h.notificationService.List(r.Context(), session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := notificationsResponse{Notifications: list}
	if resp.Notifications == nil {
		resp.Notifications = []*model.Notification{}
	}
	for _, n := range list {
		if !n.Read {
			resp.UnreadCount++
		}
	}
	ui.JSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	err := h.notificationService.MarkRead(r.Context(), session.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	err := h.notificationService.MarkAllRead(r.Context(), session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
