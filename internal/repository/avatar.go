package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

var ErrNoAvatarSlot = errors.New("role has no avatar slot")

// AvatarRepository stores one avatar value (data URI or URL) per account,
// in a slot scoped by role.
type AvatarRepository interface {
	Get(ctx context.Context, role model.Role, accountID string) (string, error)
	Set(ctx context.Context, role model.Role, accountID, value string) error
	Delete(ctx context.Context, role model.Role, accountID string) error
}

type avatarRepository struct {
	store localstore.Store
}

func NewAvatarRepository(store localstore.Store) AvatarRepository {
	return &avatarRepository{store: store}
}

// AvatarKey is user-{id}-avatar or professional-{id}-avatar.
func AvatarKey(role model.Role, accountID string) (string, error) {
	switch role {
	case model.RoleUser, model.RoleProfessional:
		return fmt.Sprintf("%s-%s-avatar", role, accountID), nil
	}
	return "", ErrNoAvatarSlot
}

// Get returns "" when the slot is empty or the role has none.
func (r *avatarRepository) Get(ctx context.Context, role model.Role, accountID string) (string, error) {
	key, err := AvatarKey(role, accountID)
	if err != nil {
		return "", nil
	}

	value, err := r.store.Get(ctx, key)
	if errors.Is(err, localstore.ErrNotFound) {
		return "", nil
	}
	return value, err
}

func (r *avatarRepository) Set(ctx context.Context, role model.Role, accountID, value string) error {
	key, err := AvatarKey(role, accountID)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, value)
}

func (r *avatarRepository) Delete(ctx context.Context, role model.Role, accountID string) error {
	key, err := AvatarKey(role, accountID)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, key)
}
