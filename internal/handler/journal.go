package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type JournalHandler struct {
	journalService *service.JournalService
}

func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

type journalRequest struct {
	Content string `json:"content"`
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req journalRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.journalService.Create(r.Context(), session.ID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) Entries(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	entries, err := h.journalService.Entries(r.Context(), session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) Entry(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	entry, err := h.journalService.Entry(r.Context(), session.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req journalRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.journalService.Update(r.Context(), session.ID, r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	err := h.journalService.Delete(r.Context(), session.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
