package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

const (
	HabitSortRecent = "recent"
	HabitSortStreak = "checkins"
	HabitSortTitle  = "title"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	ByID(ctx context.Context, userID, habitID string) (*model.Habit, error)
	Habits(ctx context.Context, userID, sortBy string) ([]*model.Habit, error)
	Modify(ctx context.Context, userID, habitID string, fn func(habit *model.Habit) error) (*model.Habit, error)
	Delete(ctx context.Context, userID, habitID string) error
	Clear(ctx context.Context) error
}

type habitRepository struct {
	habits *collection[model.Habit]
}

func NewHabitRepository(store localstore.Store) HabitRepository {
	return &habitRepository{habits: newCollection[model.Habit](store, KeyHabits)}
}

func (r *habitRepository) Create(ctx context.Context, habit *model.Habit) error {
	return r.habits.mutate(ctx, func(habits []*model.Habit) ([]*model.Habit, error) {
		return append(habits, habit), nil
	})
}

func (r *habitRepository) ByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	all, err := r.habits.all(ctx)
	if err != nil {
		return nil, err
	}

	for _, habit := range all {
		if habit.ID == habitID && habit.UserID == userID {
			return habit, nil
		}
	}
	return nil, ErrHabitNotFound
}

func (r *habitRepository) Habits(ctx context.Context, userID, sortBy string) ([]*model.Habit, error) {
	all, err := r.habits.all(ctx)
	if err != nil {
		return nil, err
	}

	var habits []*model.Habit
	for _, habit := range all {
		if habit.UserID == userID {
			habits = append(habits, habit)
		}
	}

	switch sortBy {
	case HabitSortStreak:
		sort.SliceStable(habits, func(i, j int) bool {
			return len(habits[i].CheckIns) > len(habits[j].CheckIns)
		})
	case HabitSortTitle:
		sort.SliceStable(habits, func(i, j int) bool {
			return strings.ToLower(habits[i].Title) < strings.ToLower(habits[j].Title)
		})
	default: // HabitSortRecent or empty
		sort.SliceStable(habits, func(i, j int) bool {
			return habits[i].UpdatedAt.After(habits[j].UpdatedAt)
		})
	}

	return habits, nil
}

// Modify applies fn to the stored habit and persists the result in one
// locked read-modify-write. Nothing is written when fn fails.
func (r *habitRepository) Modify(ctx context.Context, userID, habitID string, fn func(habit *model.Habit) error) (*model.Habit, error) {
	var modified *model.Habit
	err := r.habits.mutate(ctx, func(habits []*model.Habit) ([]*model.Habit, error) {
		for _, existing := range habits {
			if existing.ID == habitID && existing.UserID == userID {
				err := fn(existing)
				if err != nil {
					return nil, err
				}
				modified = existing
				return habits, nil
			}
		}
		return nil, ErrHabitNotFound
	})
	if err != nil {
		return nil, err
	}
	return modified, nil
}

func (r *habitRepository) Delete(ctx context.Context, userID, habitID string) error {
	return r.habits.mutate(ctx, func(habits []*model.Habit) ([]*model.Habit, error) {
		for i, existing := range habits {
			if existing.ID == habitID && existing.UserID == userID {
				return append(habits[:i], habits[i+1:]...), nil
			}
		}
		return nil, ErrHabitNotFound
	})
}

func (r *habitRepository) Clear(ctx context.Context) error {
	return r.habits.clear(ctx)
}
