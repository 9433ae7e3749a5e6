package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/templui/soulsync/internal/localstore"
)

// Storage keys shared with the browser build of SoulSync.
const (
	KeyDirectory      = "soulsync_users_mock_db"
	KeySession        = "soulsync_user_v2"
	KeyPending        = "pending_professionals"
	KeyApprovals      = "approved_professional_notifications"
	KeyMoodEntries    = "soulsync_mood_entries"
	KeyHabits         = "soulsync_habits"
	KeyJournalEntries = "soulsync_journal_entries"
	KeyForumPosts     = "soulsync_forum_posts"
	KeyNotifications  = "soulsync_notifications"
)

// loadJSON decodes the blob stored at key into v. It reports false when the
// key is missing or the stored value does not parse.
func loadJSON(ctx context.Context, store localstore.Store, key string, v any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, localstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	err = json.Unmarshal([]byte(raw), v)
	if err != nil {
		slog.Warn("discarding unparsable blob", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func saveJSON(ctx context.Context, store localstore.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	err = store.Set(ctx, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// collection is a JSON array blob. Every change rewrites the whole array.
type collection[T any] struct {
	mu    sync.Mutex
	store localstore.Store
	key   string
}

func newCollection[T any](store localstore.Store, key string) *collection[T] {
	return &collection[T]{store: store, key: key}
}

func (c *collection[T]) all(ctx context.Context) ([]*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *collection[T]) load(ctx context.Context) ([]*T, error) {
	var items []*T
	_, err := loadJSON(ctx, c.store, c.key, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// mutate runs fn over the current items and persists what it returns.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []*T) ([]*T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	if items == nil {
		items = []*T{}
	}
	return saveJSON(ctx, c.store, c.key, items)
}

func (c *collection[T]) clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, c.key)
}
