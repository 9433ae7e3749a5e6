package middleware

import (
	"net/http"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/service"
)

// SessionMiddleware binds the active session to requests that carry a
// matching auth cookie. The loading flag is always added to the context.
func SessionMiddleware(authService *service.AuthService, sessionService *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessionService.State()
			ctx := ctxkeys.WithSessionLoading(r.Context(), state.Loading)

			cookie, err := r.Cookie(service.AuthCookieName)
			if err != nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Keep the cookie while the stored session is still being restored
			if state.Loading {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if state.Session == nil || userID != state.Session.ID || role != string(state.Session.Role) {
				// Signed out, or another account signed in since
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = ctxkeys.WithSession(ctx, state.Session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
