package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

func TestSessionService_LoadingUntilHydrated(t *testing.T) {
	store := localstore.NewMemoryStore()
	directory := repository.NewDirectoryRepository(store)
	notifications := NewNotificationService(repository.NewNotificationRepository(store))
	sessions := NewSessionService(
		repository.NewSessionRepository(store),
		directory,
		repository.NewApprovalInbox(store),
		NewAvatarService(repository.NewAvatarRepository(store), nil),
		notifications,
	)

	state := sessions.State()
	assert.True(t, state.Loading)
	assert.Nil(t, state.Session)

	require.NoError(t, sessions.Hydrate(context.Background()))
	state = sessions.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.Session)
}

func TestSessionService_HydrateRestoresAndRefreshes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	reg := env.registerUser(t, "ann", "ann@x.io", "secret1")

	account, err := env.directory.ByEmail(ctx, "ann@x.io")
	require.NoError(t, err)
	account.Username = "Ann Renamed"
	require.NoError(t, env.directory.Upsert(ctx, "ann@x.io", account))

	_, err = env.avatars.Set(ctx, model.RoleUser, reg.Account.ID, pngDataURI())
	require.NoError(t, err)

	restarted := env.restart(t)
	session := restarted.sessions.Current()
	require.NotNil(t, session)
	assert.Equal(t, "Ann Renamed", session.Username)
	assert.Equal(t, pngDataURI(), session.Avatar)
}

func TestSessionService_HydrateDropsDeletedAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.registerUser(t, "ann", "ann@x.io", "secret1")
	require.NoError(t, env.directory.Remove(ctx, "ann@x.io"))

	restarted := env.restart(t)
	assert.Nil(t, restarted.sessions.Current())

	stored, err := restarted.sessionRepo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSessionService_HydrateDiscardsCorruptSession(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repository.KeySession, "not json"))

	env := newTestEnvWithStore(t, store)
	state := env.sessions.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.Session)
}

func TestSessionService_RefreshAvatar(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	session, err := env.sessions.RefreshAvatar(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	reg := env.registerUser(t, "ann", "ann@x.io", "secret1")
	_, err = env.avatars.Set(ctx, model.RoleUser, reg.Account.ID, pngDataURI())
	require.NoError(t, err)

	session, err = env.sessions.RefreshAvatar(ctx)
	require.NoError(t, err)
	assert.Equal(t, pngDataURI(), session.Avatar)
	assert.Equal(t, pngDataURI(), env.sessions.Current().Avatar)
}

func TestSessionService_CurrentIsACopy(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "ann", "ann@x.io", "secret1")

	session := env.sessions.Current()
	session.Username = "mallory"
	assert.Equal(t, "ann", env.sessions.Current().Username)
}
