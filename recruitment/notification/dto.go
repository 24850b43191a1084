package notification

import (
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// CreateNotificationRequest describes a notification to deliver
type CreateNotificationRequest struct {
	RecipientID   kernel.UserID         `json:"recipient_id"`
	Title         string                `json:"title"`
	Message       string                `json:"message"`
	Type          Type                  `json:"type"`
	ApplicationID *kernel.ApplicationID `json:"application_id,omitempty"`
}

func (r CreateNotificationRequest) Validate() error {
	if r.RecipientID.IsEmpty() {
		return ErrInvalidRequest().WithDetail("field", "recipient_id")
	}
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Message) == "" {
		return ErrInvalidRequest().WithDetail("field", "title/message")
	}
	if !r.Type.IsValid() {
		return ErrInvalidRequest().WithDetail("type", r.Type)
	}
	return nil
}

// MarkReadRequest marks one notification when ID is set, otherwise all of them
type MarkReadRequest struct {
	NotificationID *kernel.NotificationID `json:"notification_id,omitempty"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// OutboxMessage is a queued notification awaiting redelivery
type OutboxMessage struct {
	ID         string                    `json:"id"`
	Request    CreateNotificationRequest `json:"request"`
	Attempts   int                       `json:"attempts"`
	LastError  string                    `json:"last_error,omitempty"`
	EnqueuedAt time.Time                 `json:"enqueued_at"`
}
