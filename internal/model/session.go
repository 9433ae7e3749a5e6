package model

import "time"

// Session is the single signed-in identity. It never carries a password.
type Session struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             Role      `json:"role"`
	Verified         bool      `json:"verified"`
	Occupation       string    `json:"occupation,omitempty"`
	IdentityDocument string    `json:"identityDocument,omitempty"`
	Avatar           string    `json:"avatar,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func (s *Session) IsProfessional() bool {
	return s != nil && s.Role == RoleProfessional
}
