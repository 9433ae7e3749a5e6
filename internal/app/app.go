package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/soulsync/internal/config"
	"github.com/templui/soulsync/internal/db"
	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/markdown"
	"github.com/templui/soulsync/internal/repository"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Store               localstore.Store
	AuthService         *service.AuthService
	SessionService      *service.SessionService
	AvatarService       *service.AvatarService
	EmailService        *service.EmailService
	NotificationService *service.NotificationService
	MoodService         *service.MoodService
	JournalService      *service.JournalService
	HabitService        *service.HabitService
	ForumService        *service.ForumService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	avatarStorage, err := storage.New(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a, err := Wire(ctx, cfg, localstore.NewSQLStore(database), avatarStorage)
	if err != nil {
		database.Close()
		return nil, err
	}
	a.DB = database
	return a, nil
}

// Wire builds the services over store and seeds the directory. Session
// hydration is left to the caller.
func Wire(ctx context.Context, cfg *config.Config, store localstore.Store, avatarStorage storage.Storage) (*App, error) {
	// Repositories
	directoryRepository := repository.NewDirectoryRepository(store)
	pendingRepository := repository.NewPendingRepository(store)
	approvalInbox := repository.NewApprovalInbox(store)
	sessionRepository := repository.NewSessionRepository(store)
	avatarRepository := repository.NewAvatarRepository(store)
	notificationRepository := repository.NewNotificationRepository(store)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notificationService := service.NewNotificationService(notificationRepository)
	avatarService := service.NewAvatarService(avatarRepository, avatarStorage)
	sessionService := service.NewSessionService(
		sessionRepository,
		directoryRepository,
		approvalInbox,
		avatarService,
		notificationService,
	)
	authService := service.NewAuthService(
		directoryRepository,
		pendingRepository,
		approvalInbox,
		sessionService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	moodService := service.NewMoodService(repository.NewMoodRepository(store))
	journalService := service.NewJournalService(repository.NewJournalRepository(store), markdown.NewParser())
	habitService := service.NewHabitService(repository.NewHabitRepository(store))
	forumService := service.NewForumService(repository.NewForumRepository(store), notificationService)

	// Personal tracking data does not survive a sign-out
	authService.OnLogout("mood", moodService.Clear)
	authService.OnLogout("habits", habitService.Clear)
	authService.OnLogout("journal", journalService.Clear)

	err := authService.Init(ctx)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:                 cfg,
		Store:               store,
		AuthService:         authService,
		SessionService:      sessionService,
		AvatarService:       avatarService,
		EmailService:        emailService,
		NotificationService: notificationService,
		MoodService:         moodService,
		JournalService:      journalService,
		HabitService:        habitService,
		ForumService:        forumService,
	}, nil
}

// HydrateSession restores the stored session in the background. Requests
// see the loading state until it finishes.
func (a *App) HydrateSession(ctx context.Context) {
	go func() {
		err := a.SessionService.Hydrate(ctx)
		if err != nil {
			slog.Error("failed to restore session", "error", err)
		}
	}()
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
