package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

func TestSession_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(localstore.NewMemoryStore())

	session, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, repo.Save(ctx, &model.Session{ID: "u1", Email: "ann@x.com", Role: model.RoleUser}))

	session, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.ID)

	require.NoError(t, repo.Clear(ctx))
	session, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSession_CorruptBlobIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeySession, "[]oops"))

	session, err := NewSessionRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	_, err = store.Get(ctx, KeySession)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestSession_BlobWithoutIDIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeySession, `{"email":"ann@x.com"}`))

	session, err := NewSessionRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}
