package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

var (
	ErrHabitTitleRequired = errors.New("habit title is required")
	ErrHabitArchived      = errors.New("habit is archived")
	ErrInvalidHabitStatus = errors.New("invalid habit status")
	ErrFutureCheckIn      = errors.New("cannot check in on a future day")
)

type HabitService struct {
	repo repository.HabitRepository
}

func NewHabitService(repo repository.HabitRepository) *HabitService {
	return &HabitService{repo: repo}
}

func (s *HabitService) Create(ctx context.Context, userID, title, description string) (*model.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrHabitTitleRequired
	}

	now := time.Now()
	habit := &model.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      model.HabitStatusActive,
		CheckIns:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

func (s *HabitService) ByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	return s.repo.ByID(ctx, userID, habitID)
}

func (s *HabitService) Habits(ctx context.Context, userID, sortBy string) ([]*model.Habit, error) {
	return s.repo.Habits(ctx, userID, sortBy)
}

func (s *HabitService) Update(ctx context.Context, userID, habitID, title, description, status string) (*model.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrHabitTitleRequired
	}
	if status != model.HabitStatusActive && status != model.HabitStatusArchived {
		return nil, ErrInvalidHabitStatus
	}

	habit, err := s.repo.Modify(ctx, userID, habitID, func(habit *model.Habit) error {
		habit.Title = title
		habit.Description = strings.TrimSpace(description)
		habit.Status = status
		habit.UpdatedAt = time.Now()
		return nil
	})
	if errors.Is(err, repository.ErrHabitNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// CheckIn marks the habit done on day. Checking in twice on one day is a
// no-op.
func (s *HabitService) CheckIn(ctx context.Context, userID, habitID string, day time.Time) (*model.Habit, error) {
	key := day.Format(model.DayLayout)
	if key > time.Now().Format(model.DayLayout) {
		return nil, ErrFutureCheckIn
	}

	habit, err := s.repo.Modify(ctx, userID, habitID, func(habit *model.Habit) error {
		if habit.Status == model.HabitStatusArchived {
			return ErrHabitArchived
		}
		if habit.CheckedIn(key) {
			return nil
		}

		habit.CheckIns = append(habit.CheckIns, key)
		sort.Strings(habit.CheckIns)
		habit.UpdatedAt = time.Now()
		return nil
	})
	if errors.Is(err, repository.ErrHabitNotFound) || errors.Is(err, ErrHabitArchived) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	return habit, nil
}

func (s *HabitService) Streak(ctx context.Context, userID, habitID string) (int, error) {
	habit, err := s.repo.ByID(ctx, userID, habitID)
	if err != nil {
		return 0, err
	}
	return HabitStreak(habit, time.Now()), nil
}

// HabitStreak counts consecutive checked-in days ending today. A streak that
// ended yesterday still counts, since today may not be checked in yet.
func HabitStreak(habit *model.Habit, today time.Time) int {
	day := today
	if !habit.CheckedIn(day.Format(model.DayLayout)) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for habit.CheckedIn(day.Format(model.DayLayout)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	return s.repo.Delete(ctx, userID, habitID)
}

func (s *HabitService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
