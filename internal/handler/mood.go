package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type MoodHandler struct {
	moodService *service.MoodService
}

func NewMoodHandler(moodService *service.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

type moodRequest struct {
	Score int    `json:"score"`
	Note  string `json:"note"`
}

func (h *MoodHandler) Log(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req moodRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.moodService.Log(r.Context(), session.ID, req.Score, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusCreated, entry)
}

func (h *MoodHandler) Entries(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	entries, err := h.moodService.Entries(r.Context(), session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, entries)
}

// Summary accepts ?days=N; the default is the last week.
func (h *MoodHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ui.Error(w, http.StatusBadRequest, "days must be a non-negative number")
			return
		}
		days = parsed
	}

	summary, err := h.moodService.Summary(r.Context(), session.ID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, summary)
}
