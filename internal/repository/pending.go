package repository

import (
	"context"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

// PendingRepository is the ordered queue of professionals awaiting review.
type PendingRepository interface {
	All(ctx context.Context) ([]*model.PendingProfessional, error)
	ByID(ctx context.Context, id string) (*model.PendingProfessional, error)
	Append(ctx context.Context, entry *model.PendingProfessional) error
	Remove(ctx context.Context, id string) (bool, error)
	Replace(ctx context.Context, entry *model.PendingProfessional) error
}

type pendingRepository struct {
	queue *collection[model.PendingProfessional]
}

func NewPendingRepository(store localstore.Store) PendingRepository {
	return &pendingRepository{queue: newCollection[model.PendingProfessional](store, KeyPending)}
}

func (r *pendingRepository) All(ctx context.Context) ([]*model.PendingProfessional, error) {
	return r.queue.all(ctx)
}

// ByID returns nil when id is not queued.
func (r *pendingRepository) ByID(ctx context.Context, id string) (*model.PendingProfessional, error) {
	entries, err := r.queue.all(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, nil
}

func (r *pendingRepository) Append(ctx context.Context, entry *model.PendingProfessional) error {
	return r.queue.mutate(ctx, func(entries []*model.PendingProfessional) ([]*model.PendingProfessional, error) {
		return append(entries, entry), nil
	})
}

// Remove drops every entry with the given id and reports whether one existed.
func (r *pendingRepository) Remove(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.queue.mutate(ctx, func(entries []*model.PendingProfessional) ([]*model.PendingProfessional, error) {
		kept := entries[:0]
		for _, entry := range entries {
			if entry.ID == id {
				removed = true
				continue
			}
			kept = append(kept, entry)
		}
		return kept, nil
	})
	return removed, err
}

// Replace swaps the queued entry with the same id, keeping its position.
func (r *pendingRepository) Replace(ctx context.Context, entry *model.PendingProfessional) error {
	return r.queue.mutate(ctx, func(entries []*model.PendingProfessional) ([]*model.PendingProfessional, error) {
		for i, existing := range entries {
			if existing.ID == entry.ID {
				entries[i] = entry
			}
		}
		return entries, nil
	})
}
