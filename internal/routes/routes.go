package routes

import (
	"net/http"

	"github.com/templui/soulsync/internal/app"
	"github.com/templui/soulsync/internal/handler"
	"github.com/templui/soulsync/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	admin := handler.NewAdminHandler(app.AuthService)
	account := handler.NewAccountHandler(app.AuthService, app.SessionService, app.AvatarService)
	dashboard := handler.NewDashboardHandler(app.MoodService, app.HabitService, app.ForumService, app.NotificationService)
	mood := handler.NewMoodHandler(app.MoodService)
	journal := handler.NewJournalHandler(app.JournalService)
	habit := handler.NewHabitHandler(app.HabitService)
	forum := handler.NewForumHandler(app.ForumService)
	notification := handler.NewNotificationHandler(app.NotificationService)

	mux := http.NewServeMux()

	// Every route passes the guard: it answers with the loading page until
	// the session is restored, then redirects by role and area.
	guard := middleware.Guard
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateLimitWindow)

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", guard(home.Home))
	mux.HandleFunc("GET /healthz", home.Health)

	// ============================================================================
	// AUTH ROUTES
	// ============================================================================

	// End users
	mux.HandleFunc("POST /auth/login", guard(rateLimiter(auth.Login)))
	mux.HandleFunc("POST /auth/register", guard(rateLimiter(auth.Register)))

	// Professional portal
	mux.HandleFunc("POST /pro/login", guard(rateLimiter(auth.ProfessionalLogin)))
	mux.HandleFunc("POST /pro/register", guard(rateLimiter(auth.ProfessionalRegister)))

	// Admin portal
	mux.HandleFunc("POST /admin/login", guard(rateLimiter(auth.AdminLogin)))

	mux.HandleFunc("POST /auth/logout", guard(auth.Logout))
	mux.HandleFunc("GET /auth/session", guard(auth.Session))

	// ============================================================================
	// USER ROUTES
	// ============================================================================

	mux.HandleFunc("GET /app/dashboard", guard(dashboard.UserDashboard))

	// Account
	mux.HandleFunc("PATCH /app/account", guard(account.Update))
	mux.HandleFunc("POST /app/account/avatar", guard(account.UploadAvatar))
	mux.HandleFunc("DELETE /app/account/avatar", guard(account.DeleteAvatar))

	// Mood
	mux.HandleFunc("POST /app/mood", guard(mood.Log))
	mux.HandleFunc("GET /app/mood", guard(mood.Entries))
	mux.HandleFunc("GET /app/mood/summary", guard(mood.Summary))

	// Journal
	mux.HandleFunc("POST /app/journal", guard(journal.Create))
	mux.HandleFunc("GET /app/journal", guard(journal.Entries))
	mux.HandleFunc("GET /app/journal/{id}", guard(journal.Entry))
	mux.HandleFunc("PUT /app/journal/{id}", guard(journal.Update))
	mux.HandleFunc("DELETE /app/journal/{id}", guard(journal.Delete))

	// Habits
	mux.HandleFunc("POST /app/habits", guard(habit.Create))
	mux.HandleFunc("GET /app/habits", guard(habit.Habits))
	mux.HandleFunc("PATCH /app/habits/{id}", guard(habit.Update))
	mux.HandleFunc("POST /app/habits/{id}/checkins", guard(habit.CheckIn))
	mux.HandleFunc("DELETE /app/habits/{id}", guard(habit.Delete))

	// Forum
	mux.HandleFunc("GET /app/forum", guard(forum.Board))
	mux.HandleFunc("POST /app/forum/posts", guard(forum.CreatePost))
	mux.HandleFunc("GET /app/forum/posts/{id}", guard(forum.Post))
	mux.HandleFunc("POST /app/forum/posts/{id}/replies", guard(forum.Reply))

	// Notifications
	mux.HandleFunc("GET /app/notifications", guard(notification.List))
	mux.HandleFunc("POST /app/notifications/{id}/read", guard(notification.MarkRead))
	mux.HandleFunc("POST /app/notifications/read-all", guard(notification.MarkAllRead))

	// ============================================================================
	// PROFESSIONAL ROUTES
	// ============================================================================

	mux.HandleFunc("GET /pro/dashboard", guard(dashboard.ProfessionalDashboard))
	mux.HandleFunc("PATCH /pro/account", guard(account.Update))
	mux.HandleFunc("POST /pro/account/avatar", guard(account.UploadAvatar))
	mux.HandleFunc("DELETE /pro/account/avatar", guard(account.DeleteAvatar))
	mux.HandleFunc("GET /pro/forum", guard(forum.Board))
	mux.HandleFunc("GET /pro/forum/posts/{id}", guard(forum.Post))
	mux.HandleFunc("POST /pro/forum/posts/{id}/replies", guard(forum.Reply))
	mux.HandleFunc("GET /pro/notifications", guard(notification.List))
	mux.HandleFunc("POST /pro/notifications/{id}/read", guard(notification.MarkRead))
	mux.HandleFunc("POST /pro/notifications/read-all", guard(notification.MarkAllRead))

	// ============================================================================
	// ADMIN ROUTES
	// ============================================================================

	mux.HandleFunc("GET /admin/dashboard", guard(admin.Dashboard))
	mux.HandleFunc("GET /admin/pending", guard(admin.Pending))
	mux.HandleFunc("POST /admin/pending/{id}/verify", guard(admin.Verify))
	mux.HandleFunc("POST /admin/pending/{id}/reject", guard(admin.Reject))
	mux.HandleFunc("GET /admin/accounts", guard(admin.Accounts))

	// Unknown paths still go through the guard so protected areas redirect
	// before they 404.
	mux.HandleFunc("/{path...}", guard(home.NotFound))

	return middleware.Chain(mux,
		middleware.Config(app.Cfg),
		middleware.CSRFProtection,
		middleware.SessionMiddleware(app.AuthService, app.SessionService),
		middleware.RequestLogging,
	)
}
