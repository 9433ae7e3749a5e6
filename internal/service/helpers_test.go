package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/markdown"
	"github.com/templui/soulsync/internal/repository"
)

// testEnv wires the services over one in-memory local store, the way the app
// wires them over the database.
type testEnv struct {
	store         localstore.Store
	directory     repository.DirectoryRepository
	pending       repository.PendingRepository
	approvals     repository.ApprovalInbox
	sessionRepo   repository.SessionRepository
	avatars       *AvatarService
	notifications *NotificationService
	sessions      *SessionService
	auth          *AuthService
	mood          *MoodService
	journal       *JournalService
	habits        *HabitService
	forum         *ForumService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, localstore.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, store localstore.Store) *testEnv {
	t.Helper()

	env := &testEnv{
		store:       store,
		directory:   repository.NewDirectoryRepository(store),
		pending:     repository.NewPendingRepository(store),
		approvals:   repository.NewApprovalInbox(store),
		sessionRepo: repository.NewSessionRepository(store),
	}

	env.notifications = NewNotificationService(repository.NewNotificationRepository(store))
	env.avatars = NewAvatarService(repository.NewAvatarRepository(store), nil)
	env.sessions = NewSessionService(env.sessionRepo, env.directory, env.approvals, env.avatars, env.notifications)

	email := NewEmailService("", "noreply@soulsync.test", "http://localhost:8090", "SoulSync", true)
	env.auth = NewAuthService(
		env.directory,
		env.pending,
		env.approvals,
		env.sessions,
		email,
		"test-secret",
		false,
		time.Hour,
	).WithPasswordCost(bcrypt.MinCost)

	env.mood = NewMoodService(repository.NewMoodRepository(store))
	env.journal = NewJournalService(repository.NewJournalRepository(store), markdown.NewParser())
	env.habits = NewHabitService(repository.NewHabitRepository(store))
	env.forum = NewForumService(repository.NewForumRepository(store), env.notifications)

	require.NoError(t, env.auth.Init(context.Background()))
	require.NoError(t, env.sessions.Hydrate(context.Background()))
	return env
}

// restart simulates a fresh process over the same local storage.
func (e *testEnv) restart(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, e.store)
}

func (e *testEnv) registerUser(t *testing.T, username, email, password string) *Registration {
	t.Helper()
	reg, err := e.auth.Register(context.Background(), RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return reg
}

func (e *testEnv) registerProfessional(t *testing.T, username, email, password string) *Registration {
	t.Helper()
	reg, err := e.auth.Register(context.Background(), RegisterParams{
		Username:   username,
		Email:      email,
		Password:   password,
		Role:       "professional",
		Occupation: "Therapist",
	})
	require.NoError(t, err)
	return reg
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngPixel)
}
