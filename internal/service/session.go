package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

// SessionState is a snapshot of the session lifecycle as the router sees it.
type SessionState struct {
	Loading bool
	Session *model.Session
}

// SessionService owns the in-memory copy of the single active session. It
// reports loading until the first Hydrate completes.
type SessionService struct {
	mu            sync.RWMutex
	loading       bool
	current       *model.Session
	repo          repository.SessionRepository
	directory     repository.DirectoryRepository
	approvals     repository.ApprovalInbox
	avatars       *AvatarService
	notifications *NotificationService
}

func NewSessionService(
	repo repository.SessionRepository,
	directory repository.DirectoryRepository,
	approvals repository.ApprovalInbox,
	avatars *AvatarService,
	notifications *NotificationService,
) *SessionService {
	return &SessionService{
		loading:       true,
		repo:          repo,
		directory:     directory,
		approvals:     approvals,
		avatars:       avatars,
		notifications: notifications,
	}
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{Loading: s.loading, Session: copySession(s.current)}
}

// Current returns a copy of the active session, or nil.
func (s *SessionService) Current() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.current)
}

// Hydrate restores the stored session. Failures leave the state
// unauthenticated; loading is cleared either way.
func (s *SessionService) Hydrate(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	stored, err := s.repo.Load(ctx)
	if err != nil {
		s.setCurrent(nil)
		return fmt.Errorf("failed to load session: %w", err)
	}
	if stored == nil {
		s.setCurrent(nil)
		return nil
	}

	account, err := s.directory.ByID(ctx, stored.ID)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		if stored.Role != model.RoleAdmin {
			slog.Info("stored session no longer has an account", "user_id", stored.ID)
			s.setCurrent(nil)
			return s.repo.Clear(ctx)
		}
	case err != nil:
		slog.Warn("failed to refresh session from directory", "error", err, "user_id", stored.ID)
	default:
		refreshed := account.Session()
		refreshed.Role = stored.Role
		stored = refreshed
	}

	session, err := s.resolve(ctx, stored)
	if err != nil {
		s.setCurrent(nil)
		return err
	}

	slog.Info("session restored", "user_id", session.ID, "role", session.Role)
	return nil
}

// Start makes session the active one.
func (s *SessionService) Start(ctx context.Context, session *model.Session) (*model.Session, error) {
	return s.resolve(ctx, session)
}

// Update replaces the active session without touching avatar slots or the
// approval inbox.
func (s *SessionService) Update(ctx context.Context, session *model.Session) error {
	err := s.repo.Save(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.setCurrent(session)
	return nil
}

// RefreshAvatar re-reads the avatar slot of the active session.
func (s *SessionService) RefreshAvatar(ctx context.Context) (*model.Session, error) {
	current := s.Current()
	if current == nil {
		return nil, nil
	}

	avatar, err := s.avatars.Resolve(ctx, current.Role, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve avatar: %w", err)
	}
	current.Avatar = avatar

	err = s.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (s *SessionService) Clear(ctx context.Context) error {
	s.setCurrent(nil)
	return s.repo.Clear(ctx)
}

// resolve fills in the role-scoped avatar, delivers a waiting approval
// notice and persists the result.
func (s *SessionService) resolve(ctx context.Context, session *model.Session) (*model.Session, error) {
	session = copySession(session)

	avatar, err := s.avatars.Resolve(ctx, session.Role, session.ID)
	if err != nil {
		slog.Warn("failed to resolve avatar", "error", err, "user_id", session.ID)
	}
	if avatar != "" {
		session.Avatar = avatar
	}

	if session.Role == model.RoleProfessional {
		s.deliverApproval(ctx, session)
	}

	err = s.Update(ctx, session)
	if err != nil {
		return nil, err
	}
	return copySession(session), nil
}

func (s *SessionService) deliverApproval(ctx context.Context, session *model.Session) {
	approved, err := s.approvals.Consume(ctx, session.ID)
	if err != nil {
		slog.Warn("failed to read approval inbox", "error", err, "user_id", session.ID)
		return
	}
	if !approved {
		return
	}

	_, err = s.notifications.Push(ctx, session.ID, model.NotificationProfessionalApproved,
		"Your professional account has been verified. Welcome to SoulSync!")
	if err != nil {
		slog.Warn("failed to push approval notification", "error", err, "user_id", session.ID)
	}
}

func (s *SessionService) setCurrent(session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = copySession(session)
}

func copySession(session *model.Session) *model.Session {
	if session == nil {
		return nil
	}
	c := *session
	return &c
}
