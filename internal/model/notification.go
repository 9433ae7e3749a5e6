package model

import "time"

const (
	NotificationProfessionalApproved = "professional_approved"
	NotificationForumReply           = "forum_reply"
	NotificationWelcome              = "welcome"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
