package handler

import (
	"net/http"
	"time"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

var timeNow = time.Now

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

type habitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// checkInRequest takes an optional day in YYYY-MM-DD form; today by default.
type checkInRequest struct {
	Day string `json:"day"`
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req habitRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	habit, err := h.habitService.Create(r.Context(), session.ID, req.Title, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusCreated, habitSummary{Habit: habit})
}

// Habits accepts ?sort=recent|checkins|title.
func (h *HabitHandler) Habits(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	habits, err := h.habitService.Habits(r.Context(), session.ID, r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, summarizeHabits(habits))
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req habitRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	habit, err := h.habitService.Update(r.Context(), session.ID, r.PathValue("id"), req.Title, req.Description, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, habitSummary{Habit: habit, Streak: service.HabitStreak(habit, timeNow())})
}

func (h *HabitHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req checkInRequest
	if r.ContentLength != 0 {
		err := decodeJSON(w, r, &req)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	day := timeNow()
	if req.Day != "" {
		parsed, err := time.ParseInLocation(model.DayLayout, req.Day, time.Local)
		if err != nil {
			ui.Error(w, http.StatusBadRequest, "day must be in YYYY-MM-DD format")
			return
		}
		day = parsed
	}

	habit, err := h.habitService.CheckIn(r.Context(), session.ID, r.PathValue("id"), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, habitSummary{Habit: habit, Streak: service.HabitStreak(habit, timeNow())})
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	err := h.habitService.Delete(r.Context(), session.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
