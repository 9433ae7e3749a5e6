package model

import "time"

type Role string

const (
	RoleUser         Role = "user"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// Account is one record of the directory blob, keyed by Email.
type Account struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"passwordHash,omitempty"`
	Password         string    `json:"password,omitempty"` // legacy plaintext, upgraded on init
	Role             Role      `json:"role"`
	Verified         bool      `json:"verified"`
	Occupation       string    `json:"occupation,omitempty"`
	IdentityDocument string    `json:"identityDocument,omitempty"`
	Avatar           string    `json:"avatar,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Public returns the account without any credential material.
func (a *Account) Public() *Account {
	c := *a
	c.PasswordHash = ""
	c.Password = ""
	return &c
}

// Session builds the session view of the account.
func (a *Account) Session() *Session {
	return &Session{
		ID:               a.ID,
		Username:         a.Username,
		Email:            a.Email,
		Role:             a.Role,
		Verified:         a.Verified,
		Occupation:       a.Occupation,
		IdentityDocument: a.IdentityDocument,
		Avatar:           a.Avatar,
		CreatedAt:        a.CreatedAt,
	}
}

// AccountUpdate carries the fields UpdateUser may merge. Nil means unchanged.
type AccountUpdate struct {
	Username         *string `json:"username,omitempty"`
	Occupation       *string `json:"occupation,omitempty"`
	IdentityDocument *string `json:"identityDocument,omitempty"`
	Avatar           *string `json:"avatar,omitempty"`
}

func (u AccountUpdate) Empty() bool {
	return u.Username == nil && u.Occupation == nil && u.IdentityDocument == nil && u.Avatar == nil
}
