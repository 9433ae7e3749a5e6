package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

func TestHabits_SortAndOwnership(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(localstore.NewMemoryStore())
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &model.Habit{ID: "h1", UserID: "u1", Title: "walk", CheckIns: []string{"2024-03-01"}, UpdatedAt: base}))
	require.NoError(t, repo.Create(ctx, &model.Habit{ID: "h2", UserID: "u1", Title: "Breathe", CheckIns: []string{"2024-03-01", "2024-03-02"}, UpdatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Habit{ID: "h3", UserID: "u2", Title: "other"}))

	recent, err := repo.Habits(ctx, "u1", HabitSortRecent)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "h2", recent[0].ID)

	byTitle, err := repo.Habits(ctx, "u1", HabitSortTitle)
	require.NoError(t, err)
	assert.Equal(t, "Breathe", byTitle[0].Title)

	_, err = repo.ByID(ctx, "u1", "h3")
	require.ErrorIs(t, err, ErrHabitNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "u1", "h3"), ErrHabitNotFound)
	require.NoError(t, repo.Delete(ctx, "u2", "h3"))
}

func TestHabits_ModifyIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(localstore.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, &model.Habit{ID: "h1", UserID: "u1", Title: "walk"}))

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.Modify(ctx, "u1", "h1", func(habit *model.Habit) error {
				habit.CheckIns = append(habit.CheckIns, fmt.Sprintf("2024-01-%02d", n+1))
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	habit, err := repo.ByID(ctx, "u1", "h1")
	require.NoError(t, err)
	assert.Len(t, habit.CheckIns, writers)
}

func TestHabits_ModifyFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(localstore.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, &model.Habit{ID: "h1", UserID: "u1", Title: "walk"}))

	boom := errors.New("boom")
	_, err := repo.Modify(ctx, "u1", "h1", func(habit *model.Habit) error {
		habit.Title = "changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	habit, err := repo.ByID(ctx, "u1", "h1")
	require.NoError(t, err)
	assert.Equal(t, "walk", habit.Title)

	_, err = repo.Modify(ctx, "u2", "h1", func(*model.Habit) error { return nil })
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestCollection_ClearRemovesBlob(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	repo := NewMoodRepository(store)

	require.NoError(t, repo.Create(ctx, &model.MoodEntry{ID: "m1", UserID: "u1", Score: 3}))
	require.NoError(t, repo.Clear(ctx))

	_, err := store.Get(ctx, KeyMoodEntries)
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	entries, err := repo.ByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
