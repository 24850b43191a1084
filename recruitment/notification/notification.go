package notification

import (
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// Type classifies a notification
type Type string

const (
	TypeApplication Type = "application"
	TypeGeneral     Type = "general"
)

func (t Type) IsValid() bool {
	return t == TypeApplication || t == TypeGeneral
}

// Notification is an in-app message for one recipient
type Notification struct {
	ID            kernel.NotificationID `json:"id"`
	RecipientID   kernel.UserID         `json:"recipient_id"`
	Title         string                `json:"title"`
	Message       string                `json:"message"`
	Type          Type                  `json:"type"`
	ApplicationID *kernel.ApplicationID `json:"application_id,omitempty"`
	Read          bool                  `json:"read"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (n *Notification) BelongsTo(userID kernel.UserID) bool {
	return n.RecipientID == userID
}
