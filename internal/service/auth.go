package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
	"github.com/templui/soulsync/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// The single administrator account. It is seeded into an empty directory and
// is the only pair AdminLogin accepts.
const (
	AdminID       = "admin"
	AdminUsername = "Admin"
	AdminEmail    = "admin@gmail.com"
	AdminPassword = "123"
)

const AuthCookieName = "auth_token"

var (
	ErrInvalidFormat           = errors.New("please enter a valid email address")
	ErrWeakPassword            = errors.New("password must be at least 6 characters")
	ErrNotFound                = errors.New("no account matches these credentials")
	ErrWrongPortal             = errors.New("this account signs in through a different portal")
	ErrPendingVerification     = errors.New("your professional account is awaiting verification")
	ErrInvalidAdminCredentials = errors.New("invalid administrator credentials")
	ErrMissingUsername         = errors.New("username is required")
	ErrDuplicateEmail          = errors.New("an account with this email already exists")
	ErrMissingOccupation       = errors.New("occupation is required for professionals")
	ErrInvalidRole             = errors.New("accounts can only register as user or professional")
)

// LogoutHook clears data that must not outlive a session.
type LogoutHook func(ctx context.Context) error

type RegisterParams struct {
	Username         string
	Email            string
	Password         string
	Role             model.Role
	Occupation       string
	IdentityDocument string
}

// Registration is the outcome of Register. Session is nil for professionals,
// who must wait for verification.
type Registration struct {
	Account             *model.Account
	Session             *model.Session
	PendingVerification bool
}

type namedHook struct {
	name string
	fn   LogoutHook
}

type AuthService struct {
	directory    repository.DirectoryRepository
	pending      repository.PendingRepository
	approvals    repository.ApprovalInbox
	sessions     *SessionService
	emailService *EmailService
	jwtSecret    string
	isProduction bool
	jwtExpiry    time.Duration
	passwordCost int

	hooksMu     sync.Mutex
	logoutHooks []namedHook
}

func NewAuthService(
	directory repository.DirectoryRepository,
	pending repository.PendingRepository,
	approvals repository.ApprovalInbox,
	sessions *SessionService,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		directory:    directory,
		pending:      pending,
		approvals:    approvals,
		sessions:     sessions,
		emailService: emailService,
		jwtSecret:    jwtSecret,
		isProduction: isProduction,
		jwtExpiry:    jwtExpiry,
		passwordCost: bcrypt.DefaultCost,
	}
}

// WithPasswordCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithPasswordCost(cost int) *AuthService {
	s.passwordCost = cost
	return s
}

func (s *AuthService) JWTExpiry() time.Duration {
	return s.jwtExpiry
}

// Init loads the directory, seeding the administrator when it is empty, and
// replaces any legacy plaintext passwords with hashes.
func (s *AuthService) Init(ctx context.Context) error {
	hash, err := s.HashPassword(AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	accounts, err := s.directory.Initialize(ctx, &model.Account{
		ID:           AdminID,
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Verified:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize directory: %w", err)
	}

	for email, account := range accounts {
		if account.Password == "" {
			continue
		}

		hash, err := s.HashPassword(account.Password)
		if err != nil {
			return fmt.Errorf("failed to hash legacy password: %w", err)
		}
		account.PasswordHash = hash
		account.Password = ""

		err = s.directory.Upsert(ctx, email, account)
		if err != nil {
			return fmt.Errorf("failed to upgrade legacy password: %w", err)
		}
		slog.Info("upgraded legacy password", "user_id", account.ID)
	}

	err = s.upgradePendingPasswords(ctx)
	if err != nil {
		return err
	}

	slog.Info("directory initialized", "accounts", len(accounts))
	return nil
}

// upgradePendingPasswords hashes plaintext passwords left in queue entries
// written before hashing existed, so a snapshot restored on verification can
// still sign in.
func (s *AuthService) upgradePendingPasswords(ctx context.Context) error {
	entries, err := s.pending.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}

	for _, entry := range entries {
		if entry.Password == "" {
			continue
		}

		if entry.PasswordHash == "" {
			entry.PasswordHash, err = s.HashPassword(entry.Password)
			if err != nil {
				return fmt.Errorf("failed to hash legacy password: %w", err)
			}
		}
		entry.Password = ""

		err = s.pending.Replace(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to upgrade queued password: %w", err)
		}
		slog.Info("upgraded legacy queued password", "user_id", entry.ID)
	}
	return nil
}

// Login signs in an end user. Professional and administrator accounts are
// turned away before their password is looked at.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)

	account, err := s.lookup(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if account.Role == model.RoleProfessional || account.Role == model.RoleAdmin {
		return nil, fmt.Errorf("%s account on user portal: %w", account.Role, ErrWrongPortal)
	}

	err = s.checkPassword(account, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Start(ctx, account.Session())
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", account.ID)
	return session, nil
}

func (s *AuthService) ProfessionalLogin(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)

	account, err := s.lookup(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if account.Role != model.RoleProfessional {
		return nil, fmt.Errorf("%s account on professional portal: %w", account.Role, ErrWrongPortal)
	}

	err = s.checkPassword(account, password)
	if err != nil {
		return nil, err
	}

	if !account.Verified {
		return nil, ErrPendingVerification
	}

	session, err := s.sessions.Start(ctx, account.Session())
	if err != nil {
		return nil, err
	}

	slog.Info("professional logged in", "user_id", account.ID)
	return session, nil
}

// AdminLogin accepts only the fixed administrator pair, compared byte for
// byte. The session takes its fields from the directory record when one
// exists.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*model.Session, error) {
	if email != AdminEmail || password != AdminPassword {
		return nil, ErrInvalidAdminCredentials
	}

	session := &model.Session{
		ID:       AdminID,
		Username: AdminUsername,
		Email:    AdminEmail,
		Verified: true,
	}

	account, err := s.directory.ByEmail(ctx, AdminEmail)
	switch {
	case err == nil:
		session = account.Session()
	case errors.Is(err, repository.ErrAccountNotFound):
		slog.Warn("admin record missing from directory, using built-in profile")
	default:
		return nil, fmt.Errorf("failed to get admin record: %w", err)
	}
	session.Role = model.RoleAdmin

	session, err = s.sessions.Start(ctx, session)
	if err != nil {
		return nil, err
	}

	slog.Info("admin logged in")
	return session, nil
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*Registration, error) {
	username := strings.TrimSpace(params.Username)
	email := normalizeEmail(params.Email)
	occupation := strings.TrimSpace(params.Occupation)

	err := checkUsername(username)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	err = checkPasswordShape(params.Password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() || role == model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	_, err = s.directory.ByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if role == model.RoleProfessional && occupation == "" {
		return nil, ErrMissingOccupation
	}

	hash, err := s.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:               uuid.New().String(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		Verified:         role == model.RoleUser,
		Occupation:       occupation,
		IdentityDocument: strings.TrimSpace(params.IdentityDocument),
		CreatedAt:        time.Now(),
	}

	err = s.directory.Upsert(ctx, email, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if role == model.RoleProfessional {
		err = s.pending.Append(ctx, model.NewPendingProfessional(account))
		if err != nil {
			return nil, fmt.Errorf("failed to queue professional: %w", err)
		}

		err = s.emailService.SendRegistrationReceived(ctx, email, username)
		if err != nil {
			slog.Warn("failed to send registration email", "error", err, "user_id", account.ID)
		}

		slog.Info("professional registered, awaiting verification", "user_id", account.ID)
		return &Registration{Account: account.Public(), PendingVerification: true}, nil
	}

	session, err := s.sessions.Start(ctx, account.Session())
	if err != nil {
		return nil, err
	}

	err = s.emailService.SendWelcomeEmail(ctx, email, username)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", account.ID)
	}

	slog.Info("user registered", "user_id", account.ID)
	return &Registration{Account: account.Public(), Session: session}, nil
}

// OnLogout registers a hook that runs after every logout, in registration
// order.
func (s *AuthService) OnLogout(name string, hook LogoutHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.logoutHooks = append(s.logoutHooks, namedHook{name: name, fn: hook})
}

func (s *AuthService) Logout(ctx context.Context) error {
	current := s.sessions.Current()

	err := s.sessions.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.hooksMu.Lock()
	hooks := append([]namedHook(nil), s.logoutHooks...)
	s.hooksMu.Unlock()

	for _, hook := range hooks {
		hookErr := hook.fn(ctx)
		if hookErr != nil {
			slog.Warn("logout hook failed", "hook", hook.name, "error", hookErr)
		}
	}

	if current != nil {
		slog.Info("user logged out", "user_id", current.ID)
	}
	return nil
}

// UpdateUser merges update into the active session and its directory record.
// Without a session it does nothing.
func (s *AuthService) UpdateUser(ctx context.Context, update model.AccountUpdate) (*model.Session, error) {
	session := s.sessions.Current()
	if session == nil {
		return nil, nil
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		err := checkUsername(username)
		if err != nil {
			return nil, err
		}
		update.Username = &username
	}

	if update.Empty() {
		return session, nil
	}

	applySession(session, update)

	account, err := s.directory.ByEmail(ctx, session.Email)
	switch {
	case err == nil:
		applyAccount(account, update)
		err = s.directory.Upsert(ctx, session.Email, account)
		if err != nil {
			return nil, fmt.Errorf("failed to update account: %w", err)
		}
	case errors.Is(err, repository.ErrAccountNotFound):
		slog.Warn("session has no directory record", "user_id", session.ID)
	default:
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	err = s.sessions.Update(ctx, session)
	if err != nil {
		return nil, err
	}

	slog.Info("account updated", "user_id", session.ID)
	return session, nil
}

// VerifyProfessional approves a queued professional. An unknown id is logged
// and yields nil.
func (s *AuthService) VerifyProfessional(ctx context.Context, id string) (*model.Account, error) {
	entry, err := s.pending.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}
	if entry == nil {
		slog.Warn("verify requested for unknown professional", "id", id)
		return nil, nil
	}

	account, err := s.directory.ByEmail(ctx, entry.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		account = entry.Account()
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account.Verified = true

	err = s.directory.Upsert(ctx, account.Email, account)
	if err != nil {
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}

	err = s.approvals.Push(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record approval: %w", err)
	}

	_, err = s.pending.Remove(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue professional: %w", err)
	}

	err = s.emailService.SendProfessionalApproved(ctx, account.Email, account.Username)
	if err != nil {
		slog.Warn("failed to send approval email", "error", err, "user_id", account.ID)
	}

	slog.Info("professional verified", "user_id", account.ID)
	return account.Public(), nil
}

// RejectProfessional removes a queued professional from the queue and the
// directory. An unknown id is logged and yields nil.
func (s *AuthService) RejectProfessional(ctx context.Context, id string) (*model.PendingProfessional, error) {
	entry, err := s.pending.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}
	if entry == nil {
		slog.Warn("reject requested for unknown professional", "id", id)
		return nil, nil
	}

	_, err = s.pending.Remove(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue professional: %w", err)
	}

	err = s.directory.Remove(ctx, entry.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	err = s.emailService.SendProfessionalRejected(ctx, entry.Email, entry.Username)
	if err != nil {
		slog.Warn("failed to send rejection email", "error", err, "user_id", entry.ID)
	}

	slog.Info("professional rejected", "user_id", entry.ID)
	return entry.Public(), nil
}

func (s *AuthService) PendingProfessionals(ctx context.Context) ([]*model.PendingProfessional, error) {
	entries, err := s.pending.All(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*model.PendingProfessional, 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry.Public())
	}
	return list, nil
}

func (s *AuthService) Accounts(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.directory.All(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*model.Account, 0, len(accounts))
	for _, account := range accounts {
		list = append(list, account.Public())
	}
	return list, nil
}

// lookup applies the shape checks shared by both sign-in portals and finds
// the record.
func (s *AuthService) lookup(ctx context.Context, email, password string) (*model.Account, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	err = checkPasswordShape(password)
	if err != nil {
		return nil, err
	}

	account, err := s.directory.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// checkPassword reports a mismatch as ErrNotFound so that sign-in does not
// reveal which emails exist.
func (s *AuthService) checkPassword(account *model.Account, password string) error {
	if account.PasswordHash == "" {
		if account.Password != "" && account.Password == password {
			return nil
		}
		return ErrNotFound
	}

	err := s.ComparePassword(password, account.PasswordHash)
	if err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(session *model.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id": session.ID,
		"role":    string(session.Role),
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func checkUsername(username string) error {
	err := validation.ValidateName(username)
	if errors.Is(err, validation.ErrNameRequired) {
		return ErrMissingUsername
	}
	return err
}

// checkPasswordShape reports short passwords as ErrWeakPassword. Passwords
// bcrypt cannot hash are rejected with their own error.
func checkPasswordShape(password string) error {
	err := validation.ValidatePassword(password)
	if errors.Is(err, validation.ErrPasswordTooShort) {
		return ErrWeakPassword
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func applySession(session *model.Session, update model.AccountUpdate) {
	if update.Username != nil {
		session.Username = *update.Username
	}
	if update.Occupation != nil {
		session.Occupation = *update.Occupation
	}
	if update.IdentityDocument != nil {
		session.IdentityDocument = *update.IdentityDocument
	}
	if update.Avatar != nil {
		session.Avatar = *update.Avatar
	}
}

func applyAccount(account *model.Account, update model.AccountUpdate) {
	if update.Username != nil {
		account.Username = *update.Username
	}
	if update.Occupation != nil {
		account.Occupation = *update.Occupation
	}
	if update.IdentityDocument != nil {
		account.IdentityDocument = *update.IdentityDocument
	}
	if update.Avatar != nil {
		account.Avatar = *update.Avatar
	}
}
