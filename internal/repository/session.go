package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

// SessionRepository persists the one active session.
type SessionRepository interface {
	Load(ctx context.Context) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store localstore.Store
}

func NewSessionRepository(store localstore.Store) SessionRepository {
	return &sessionRepository{store: store}
}

// Load returns nil when no session is stored. A corrupt blob is removed and
// reported the same way.
func (r *sessionRepository) Load(ctx context.Context) (*model.Session, error) {
	raw, err := r.store.Get(ctx, KeySession)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session model.Session
	err = json.Unmarshal([]byte(raw), &session)
	if err != nil || session.ID == "" {
		slog.Warn("discarding corrupt session", "error", err)
		delErr := r.store.Delete(ctx, KeySession)
		if delErr != nil {
			slog.Warn("failed to delete corrupt session", "error", delErr)
		}
		return nil, nil
	}

	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *model.Session) error {
	return saveJSON(ctx, r.store, KeySession, session)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeySession)
}
