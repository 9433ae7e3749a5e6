package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/model"
)

func TestAreaFor(t *testing.T) {
	tests := map[string]Area{
		"/":               AreaPublic,
		"/about":          AreaPublic,
		"/app":            AreaUser,
		"/app/dashboard":  AreaUser,
		"/application":    AreaPublic,
		"/pro/dashboard":  AreaProfessional,
		"/pro/login":      AreaPublic,
		"/pro/register":   AreaPublic,
		"/admin/pending":  AreaAdmin,
		"/admin/login":    AreaPublic,
		"/admin/login/":   AreaPublic,
		"/auth/login":     AreaAuth,
		"/auth/register":  AreaAuth,
		"/auth/logout":    AreaPublic,
		"/auth/session":   AreaPublic,
		"/professionals":  AreaPublic,
		"/administrators": AreaPublic,
	}

	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, AreaFor(path))
		})
	}
}

func TestDecide(t *testing.T) {
	user := &model.Session{ID: "u1", Role: model.RoleUser}
	pro := &model.Session{ID: "p1", Role: model.RoleProfessional}
	admin := &model.Session{ID: "admin", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		loading bool
		session *model.Session
		area    Area
		want    Decision
	}{
		{"loading wins over everything", true, nil, AreaAdmin, Decision{Loading: true}},
		{"loading with session", true, user, AreaAuth, Decision{Loading: true}},

		{"user area anonymous", false, nil, AreaUser, Decision{Redirect: "/auth/login"}},
		{"user area admin", false, admin, AreaUser, Decision{Redirect: "/admin/dashboard"}},
		{"user area user", false, user, AreaUser, Decision{}},
		{"user area professional", false, pro, AreaUser, Decision{}},

		{"admin area anonymous", false, nil, AreaAdmin, Decision{Redirect: "/admin/login"}},
		{"admin area user", false, user, AreaAdmin, Decision{Redirect: "/admin/login"}},
		{"admin area professional", false, pro, AreaAdmin, Decision{Redirect: "/admin/login"}},
		{"admin area admin", false, admin, AreaAdmin, Decision{}},

		{"pro area anonymous", false, nil, AreaProfessional, Decision{Redirect: "/pro/login"}},
		{"pro area user", false, user, AreaProfessional, Decision{Redirect: "/pro/login"}},
		{"pro area admin", false, admin, AreaProfessional, Decision{Redirect: "/pro/login"}},
		{"pro area professional", false, pro, AreaProfessional, Decision{}},

		{"auth area anonymous", false, nil, AreaAuth, Decision{}},
		{"auth area user", false, user, AreaAuth, Decision{Redirect: "/app/dashboard"}},
		{"auth area professional", false, pro, AreaAuth, Decision{Redirect: "/app/dashboard"}},
		{"auth area admin", false, admin, AreaAuth, Decision{Redirect: "/app/dashboard"}},

		{"public anonymous", false, nil, AreaPublic, Decision{}},
		{"public admin", false, admin, AreaPublic, Decision{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.loading, tt.session, tt.area)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == Decision{}, got.Render())
		})
	}
}

func serveGuarded(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Guard(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})(rec, req)
	return rec
}

func TestGuard_Redirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	rec := serveGuarded(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestGuard_HTMXRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := serveGuarded(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("HX-Redirect"))
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestGuard_RendersAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pro/dashboard", nil)
	ctx := ctxkeys.WithSession(req.Context(), &model.Session{ID: "p1", Role: model.RoleProfessional})
	rec := serveGuarded(req.WithContext(ctx))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGuard_Loading(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	req = req.WithContext(ctxkeys.WithSessionLoading(req.Context(), true))
	rec := serveGuarded(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), "Loading SoulSync")

	post := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	post = post.WithContext(ctxkeys.WithSessionLoading(post.Context(), true))
	rec = serveGuarded(post)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
