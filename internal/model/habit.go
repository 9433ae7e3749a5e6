package model

import "time"

const (
	HabitStatusActive   = "active"
	HabitStatusArchived = "archived"
)

// DayLayout is the format of Habit.CheckIns entries.
const DayLayout = "2006-01-02"

type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CheckIns    []string  `json:"checkIns"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h *Habit) CheckedIn(day string) bool {
	for _, d := range h.CheckIns {
		if d == day {
			return true
		}
	}
	return false
}
