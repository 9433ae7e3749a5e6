package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type DashboardHandler struct {
	moodService         *service.MoodService
	habitService        *service.HabitService
	forumService        *service.ForumService
	notificationService *service.NotificationService
}

func NewDashboardHandler(
	moodService *service.MoodService,
	habitService *service.HabitService,
	forumService *service.ForumService,
	notificationService *service.NotificationService,
) *DashboardHandler {
	return &DashboardHandler{
		moodService:         moodService,
		habitService:        habitService,
		forumService:        forumService,
		notificationService: notificationService,
	}
}

type habitSummary struct {
	*model.Habit
	Streak int `json:"streak"`
}

type userDashboardResponse struct {
	Session     *model.Session     `json:"session"`
	Mood        *model.MoodSummary `json:"mood"`
	Habits      []habitSummary     `json:"habits"`
	UnreadCount int                `json:"unreadCount"`
}

func (h *DashboardHandler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	mood, err := h.moodService.Summary(ctx, session.ID, 7)
	if err != nil {
		writeError(w, r, err)
		return
	}

	habits, err := h.habitService.Habits(ctx, session.ID, repository.HabitSortRecent)
	if err != nil {
		writeError(w, r, err)
		return
	}

	unread, err := h.notificationService.UnreadCount(ctx, session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := userDashboardResponse{
		Session:     session,
		Mood:        mood,
		Habits:      summarizeHabits(habits),
		UnreadCount: unread,
	}
	ui.JSON(w, http.StatusOK, resp)
}

type professionalDashboardResponse struct {
	Session     *model.Session        `json:"session"`
	Categories  []model.ForumCategory `json:"categories"`
	UnreadCount int                   `json:"unreadCount"`
}

func (h *DashboardHandler) ProfessionalDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	categories, err := h.forumService.Categories(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	unread, err := h.notificationService.UnreadCount(ctx, session.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, http.StatusOK, professionalDashboardResponse{
		Session:     session,
		Categories:  categories,
		UnreadCount: unread,
	})
}

func summarizeHabits(habits []*model.Habit) []habitSummary {
	list := make([]habitSummary, 0, len(habits))
	for _, habit := range habits {
		list = append(list, habitSummary{Habit: habit, Streak: service.HabitStreak(habit, timeNow())})
	}
	return list
}
