package ctxkeys

import (
	"context"

	"github.com/templui/soulsync/internal/config"
	"github.com/templui/soulsync/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SessionKey        contextKey = "session"
	SessionLoadingKey contextKey = "session_loading"
	ConfigKey         contextKey = "config"
	CSRFTokenKey      contextKey = "csrf_token"
)

// Session returns the session bound to this request, or nil.
func Session(ctx context.Context) *model.Session {
	session, _ := ctx.Value(SessionKey).(*model.Session)
	return session
}

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func SessionLoading(ctx context.Context) bool {
	loading, _ := ctx.Value(SessionLoadingKey).(bool)
	return loading
}

func WithSessionLoading(ctx context.Context, loading bool) context.Context {
	return context.WithValue(ctx, SessionLoadingKey, loading)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
