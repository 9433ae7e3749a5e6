package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

func adminSeed() *model.Account {
	return &model.Account{
		ID:           "admin-1",
		Username:     "Admin",
		Email:        "admin@gmail.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDirectory_InitializeSeedsAdminWhenEmpty(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	repo := NewDirectoryRepository(store)

	accounts, err := repo.Initialize(ctx, adminSeed())
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	admin := accounts["admin@gmail.com"]
	require.NotNil(t, admin)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)

	_, err = store.Get(ctx, KeyDirectory)
	require.NoError(t, err, "seeded directory must be persisted")
}

func TestDirectory_InitializeSwallowsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyDirectory, "{not json"))

	accounts, err := NewDirectoryRepository(store).Initialize(ctx, adminSeed())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Contains(t, accounts, "admin@gmail.com")
}

func TestDirectory_InitializeKeepsExistingRecords(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	repo := NewDirectoryRepository(store)

	_, err := repo.Initialize(ctx, adminSeed())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, "ann@x.com", &model.Account{ID: "u1", Email: "ann@x.com", Role: model.RoleUser}))

	accounts, err := repo.Initialize(ctx, adminSeed())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestDirectory_UpsertSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()

	record := &model.Account{
		ID:           "u1",
		Username:     "ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$hash",
		Role:         model.RoleUser,
		Verified:     true,
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	first := NewDirectoryRepository(store)
	_, err := first.Initialize(ctx, adminSeed())
	require.NoError(t, err)
	require.NoError(t, first.Upsert(ctx, record.Email, record))

	// A fresh repository over the same store stands in for a page reload.
	accounts, err := NewDirectoryRepository(store).Initialize(ctx, adminSeed())
	require.NoError(t, err)
	assert.Equal(t, record, accounts["ann@x.com"])
}

func TestDirectory_LookupsAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewDirectoryRepository(localstore.NewMemoryStore())
	_, err := repo.Initialize(ctx, adminSeed())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, "k@x.com", &model.Account{ID: "p1", Email: "k@x.com", Role: model.RoleProfessional}))

	byEmail, err := repo.ByEmail(ctx, "k@x.com")
	require.NoError(t, err)
	assert.Equal(t, "p1", byEmail.ID)

	byID, err := repo.ByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "k@x.com", byID.Email)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Remove(ctx, "k@x.com"))
	_, err = repo.ByEmail(ctx, "k@x.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
	_, err = repo.ByID(ctx, "p1")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDirectory_UpsertStoresCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewDirectoryRepository(localstore.NewMemoryStore())

	record := &model.Account{ID: "u1", Email: "ann@x.com", Username: "ann"}
	require.NoError(t, repo.Upsert(ctx, record.Email, record))
	record.Username = "changed"

	stored, err := repo.ByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "ann", stored.Username)
}
