package model

import "time"

// PendingProfessional is a snapshot of a professional account taken at
// registration. It is not kept in sync with the directory afterwards.
type PendingProfessional struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"passwordHash,omitempty"`
	Password         string    `json:"password,omitempty"` // legacy plaintext, upgraded on init
	Occupation       string    `json:"occupation"`
	IdentityDocument string    `json:"identityDocument,omitempty"`
	Role             Role      `json:"role"`
	Verified         bool      `json:"verified"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewPendingProfessional(a *Account) *PendingProfessional {
	return &PendingProfessional{
		ID:               a.ID,
		Username:         a.Username,
		Email:            a.Email,
		PasswordHash:     a.PasswordHash,
		Occupation:       a.Occupation,
		IdentityDocument: a.IdentityDocument,
		Role:             RoleProfessional,
		Verified:         false,
		CreatedAt:        a.CreatedAt,
	}
}

// Account rebuilds a directory record from the snapshot.
func (p *PendingProfessional) Account() *Account {
	return &Account{
		ID:               p.ID,
		Username:         p.Username,
		Email:            p.Email,
		PasswordHash:     p.PasswordHash,
		Password:         p.Password,
		Role:             RoleProfessional,
		Verified:         p.Verified,
		Occupation:       p.Occupation,
		IdentityDocument: p.IdentityDocument,
		CreatedAt:        p.CreatedAt,
	}
}

// Public hides the password hash for admin views.
func (p *PendingProfessional) Public() *PendingProfessional {
	c := *p
	c.PasswordHash = ""
	c.Password = ""
	return &c
}
