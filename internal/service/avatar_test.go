package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/model"
)

func TestAvatarService_InlineSlots(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	shown, err := env.avatars.Set(ctx, model.RoleProfessional, "p1", pngDataURI())
	require.NoError(t, err)
	assert.Equal(t, pngDataURI(), shown)

	got, err := env.avatars.Resolve(ctx, model.RoleProfessional, "p1")
	require.NoError(t, err)
	assert.Equal(t, pngDataURI(), got)

	// Slots are scoped by role.
	got, err = env.avatars.Resolve(ctx, model.RoleUser, "p1")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, env.avatars.Delete(ctx, model.RoleProfessional, "p1"))
	got, err = env.avatars.Resolve(ctx, model.RoleProfessional, "p1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAvatarService_RejectsBadImages(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.avatars.Set(context.Background(), model.RoleUser, "u1", "data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidAvatar)

	_, err = env.avatars.Set(context.Background(), model.RoleAdmin, "admin", pngDataURI())
	assert.Error(t, err)
}
