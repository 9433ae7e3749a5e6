package middleware

import (
	"net/http"
	"strings"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/ui"
)

type Area int

const (
	AreaPublic Area = iota
	AreaAuth
	AreaUser
	AreaProfessional
	AreaAdmin
)

func (a Area) String() string {
	switch a {
	case AreaAuth:
		return "auth"
	case AreaUser:
		return "user"
	case AreaProfessional:
		return "professional"
	case AreaAdmin:
		return "admin"
	}
	return "public"
}

const (
	UserHome         = "/app/dashboard"
	ProfessionalHome = "/pro/dashboard"
	AdminHome        = "/admin/dashboard"

	UserLogin         = "/auth/login"
	ProfessionalLogin = "/pro/login"
	AdminLogin        = "/admin/login"
)

// publicEntryPoints sit under a guarded prefix but must stay reachable
// without the matching role.
var publicEntryPoints = map[string]bool{
	"/pro/login":    true,
	"/pro/register": true,
	"/admin/login":  true,
	"/auth/logout":  true,
	"/auth/session": true,
}

// AreaFor maps a request path to the area that guards it.
func AreaFor(path string) Area {
	if publicEntryPoints[strings.TrimSuffix(path, "/")] {
		return AreaPublic
	}

	switch {
	case hasSegmentPrefix(path, "/app"):
		return AreaUser
	case hasSegmentPrefix(path, "/pro"):
		return AreaProfessional
	case hasSegmentPrefix(path, "/admin"):
		return AreaAdmin
	case hasSegmentPrefix(path, "/auth"):
		return AreaAuth
	}
	return AreaPublic
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Decision is what the guard does with a navigation. The zero value renders
// the page.
type Decision struct {
	Loading  bool
	Redirect string
}

func (d Decision) Render() bool {
	return !d.Loading && d.Redirect == ""
}

// Decide applies the routing rules in order; the first match wins.
func Decide(loading bool, session *model.Session, area Area) Decision {
	if loading {
		return Decision{Loading: true}
	}

	switch area {
	case AreaUser:
		if session == nil {
			return Decision{Redirect: UserLogin}
		}
		if session.IsAdmin() {
			return Decision{Redirect: AdminHome}
		}
	case AreaAdmin:
		if !session.IsAdmin() {
			return Decision{Redirect: AdminLogin}
		}
	case AreaProfessional:
		if !session.IsProfessional() {
			return Decision{Redirect: ProfessionalLogin}
		}
	case AreaAuth:
		if session != nil {
			return Decision{Redirect: UserHome}
		}
	}

	return Decision{}
}

// Guard gates a route by the area its path belongs to.
func Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		decision := Decide(ctxkeys.SessionLoading(ctx), ctxkeys.Session(ctx), AreaFor(r.URL.Path))

		switch {
		case decision.Loading:
			renderLoading(w, r)
		case decision.Redirect != "":
			redirect(w, r, decision.Redirect)
		default:
			next.ServeHTTP(w, r)
		}
	}
}

func renderLoading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		ui.Error(w, http.StatusServiceUnavailable, "session is loading, try again shortly")
		return
	}

	appName := "SoulSync"
	if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}
	ui.RenderStatus(w, r, http.StatusOK, ui.LoadingPage(appName))
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	// For HTMX requests, use HX-Redirect header to force full page redirect
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
