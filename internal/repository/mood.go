package repository

import (
	"context"
	"sort"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

type MoodRepository interface {
	Create(ctx context.Context, entry *model.MoodEntry) error
	ByUser(ctx context.Context, userID string) ([]*model.MoodEntry, error)
	Clear(ctx context.Context) error
}

type moodRepository struct {
	entries *collection[model.MoodEntry]
}

func NewMoodRepository(store localstore.Store) MoodRepository {
	return &moodRepository{entries: newCollection[model.MoodEntry](store, KeyMoodEntries)}
}

func (r *moodRepository) Create(ctx context.Context, entry *model.MoodEntry) error {
	return r.entries.mutate(ctx, func(entries []*model.MoodEntry) ([]*model.MoodEntry, error) {
		return append(entries, entry), nil
	})
}

// ByUser returns the user's entries, newest first.
func (r *moodRepository) ByUser(ctx context.Context, userID string) ([]*model.MoodEntry, error) {
	all, err := r.entries.all(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*model.MoodEntry
	for _, entry := range all {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *moodRepository) Clear(ctx context.Context) error {
	return r.entries.clear(ctx)
}
