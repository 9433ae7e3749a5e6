package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

func TestPending_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPendingRepository(localstore.NewMemoryStore())

	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "a"}))
	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "b"}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestPending_RemoveByID(t *testing.T) {
	ctx := context.Background()
	repo := NewPendingRepository(localstore.NewMemoryStore())
	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "a"}))
	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "b"}))

	removed, err := repo.Remove(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	entry, err := repo.ByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, entry)

	entry, err = repo.ByID(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, entry)
}

func TestPending_ReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewPendingRepository(localstore.NewMemoryStore())
	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "a", Username: "old"}))
	require.NoError(t, repo.Append(ctx, &model.PendingProfessional{ID: "b"}))

	require.NoError(t, repo.Replace(ctx, &model.PendingProfessional{ID: "a", Username: "new"}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].Username)
	assert.Equal(t, "b", all[1].ID)
}

func TestApprovalInbox_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	inbox := NewApprovalInbox(localstore.NewMemoryStore())

	require.NoError(t, inbox.Push(ctx, "p1"))
	require.NoError(t, inbox.Push(ctx, "p1"))
	require.NoError(t, inbox.Push(ctx, "p2"))

	pending, err := inbox.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, pending)

	ok, err := inbox.Consume(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inbox.Consume(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err = inbox.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, pending)
}

func TestAvatar_RoleScopedSlots(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	repo := NewAvatarRepository(store)

	key, err := AvatarKey(model.RoleProfessional, "42")
	require.NoError(t, err)
	assert.Equal(t, "professional-42-avatar", key)

	require.NoError(t, repo.Set(ctx, model.RoleUser, "42", "data:image/png;base64,AAA"))

	v, err := repo.Get(ctx, model.RoleUser, "42")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", v)

	v, err = repo.Get(ctx, model.RoleProfessional, "42")
	require.NoError(t, err)
	assert.Empty(t, v, "slots are independent per role")

	v, err = repo.Get(ctx, model.RoleAdmin, "42")
	require.NoError(t, err)
	assert.Empty(t, v)
	require.ErrorIs(t, repo.Set(ctx, model.RoleAdmin, "42", "x"), ErrNoAvatarSlot)

	require.NoError(t, repo.Delete(ctx, model.RoleUser, "42"))
	v, err = repo.Get(ctx, model.RoleUser, "42")
	require.NoError(t, err)
	assert.Empty(t, v)
}
