package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/templui/soulsync/internal/ctxkeys"
	"github.com/templui/soulsync/internal/middleware"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	Role             model.Role `json:"role"`
	Occupation       string     `json:"occupation"`
	IdentityDocument string     `json:"identityDocument"`
}

type sessionResponse struct {
	Session  *model.Session `json:"session"`
	Redirect string         `json:"redirect,omitempty"`
}

type registerResponse struct {
	Account             *model.Account `json:"account"`
	Session             *model.Session `json:"session,omitempty"`
	PendingVerification bool           `json:"pendingVerification"`
	Redirect            string         `json:"redirect,omitempty"`
}

type signInFunc func(ctx context.Context, email, password string) (*model.Session, error)

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.authService.Login)
}

func (h *AuthHandler) ProfessionalLogin(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.authService.ProfessionalLogin)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.authService.AdminLogin)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, fn signInFunc) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, err := fn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.setAuthCookie(w, session)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, http.StatusOK, sessionResponse{Session: session, Redirect: homeFor(session.Role)})
}

// Register signs up an end user, or a professional when the body asks for
// that role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.register(w, r, req)
}

func (h *AuthHandler) ProfessionalRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Role = model.RoleProfessional
	h.register(w, r, req)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, req registerRequest) {
	reg, err := h.authService.Register(r.Context(), service.RegisterParams{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		Occupation:       req.Occupation,
		IdentityDocument: req.IdentityDocument,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if reg.PendingVerification {
		ui.JSON(w, http.StatusAccepted, registerResponse{
			Account:             reg.Account,
			PendingVerification: true,
			Redirect:            middleware.ProfessionalLogin,
		})
		return
	}

	err = h.setAuthCookie(w, reg.Session)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, http.StatusCreated, registerResponse{
		Account:  reg.Account,
		Session:  reg.Session,
		Redirect: middleware.UserHome,
	})
}

// Logout ends the active session when this browser holds it. Other browsers
// only lose their cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ctxkeys.Session(r.Context()) != nil {
		err := h.authService.Logout(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	h.authService.ClearJWTCookie(w)
	ui.JSON(w, http.StatusOK, sessionResponse{Redirect: "/"})
}

type sessionStateResponse struct {
	Loading   bool           `json:"loading"`
	Session   *model.Session `json:"session"`
	CSRFToken string         `json:"csrfToken"`
}

// Session reports the session as this browser sees it.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ui.JSON(w, http.StatusOK, sessionStateResponse{
		Loading:   ctxkeys.SessionLoading(ctx),
		Session:   ctxkeys.Session(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, session *model.Session) error {
	token, err := h.authService.GenerateJWT(session)
	if err != nil {
		return err
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
	return nil
}

func homeFor(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return middleware.AdminHome
	case model.RoleProfessional:
		return middleware.ProfessionalHome
	}
	return middleware.UserHome
}
