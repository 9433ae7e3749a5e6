package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

var (
	ErrJournalEntryNotFound = errors.New("journal entry not found")
)

type JournalRepository interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	ByID(ctx context.Context, userID, entryID string) (*model.JournalEntry, error)
	ByUser(ctx context.Context, userID string) ([]*model.JournalEntry, error)
	Update(ctx context.Context, entry *model.JournalEntry) error
	Delete(ctx context.Context, userID, entryID string) error
	Clear(ctx context.Context) error
}

type journalRepository struct {
	entries *collection[model.JournalEntry]
}

func NewJournalRepository(store localstore.Store) JournalRepository {
	return &journalRepository{entries: newCollection[model.JournalEntry](store, KeyJournalEntries)}
}

func (r *journalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	return r.entries.mutate(ctx, func(entries []*model.JournalEntry) ([]*model.JournalEntry, error) {
		return append(entries, entry), nil
	})
}

func (r *journalRepository) ByID(ctx context.Context, userID, entryID string) (*model.JournalEntry, error) {
	all, err := r.entries.all(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range all {
		if entry.ID == entryID && entry.UserID == userID {
			return entry, nil
		}
	}
	return nil, ErrJournalEntryNotFound
}

// ByUser returns the user's entries, most recently updated first.
func (r *journalRepository) ByUser(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	all, err := r.entries.all(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*model.JournalEntry
	for _, entry := range all {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (r *journalRepository) Update(ctx context.Context, entry *model.JournalEntry) error {
	return r.entries.mutate(ctx, func(entries []*model.JournalEntry) ([]*model.JournalEntry, error) {
		for i, existing := range entries {
			if existing.ID == entry.ID && existing.UserID == entry.UserID {
				entries[i] = entry
				return entries, nil
			}
		}
		return nil, ErrJournalEntryNotFound
	})
}

func (r *journalRepository) Delete(ctx context.Context, userID, entryID string) error {
	return r.entries.mutate(ctx, func(entries []*model.JournalEntry) ([]*model.JournalEntry, error) {
		for i, existing := range entries {
			if existing.ID == entryID && existing.UserID == userID {
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, ErrJournalEntryNotFound
	})
}

func (r *journalRepository) Clear(ctx context.Context) error {
	return r.entries.clear(ctx)
}
