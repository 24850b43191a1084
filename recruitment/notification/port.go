package notification

import (
	"context"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	GetByID(ctx context.Context, id kernel.NotificationID) (*Notification, error)

	// MarkRead sets read on one notification; already-read is not an error
	MarkRead(ctx context.Context, id kernel.NotificationID) error

	// MarkAllRead marks every unread notification of the recipient and returns how many changed
	MarkAllRead(ctx context.Context, recipientID kernel.UserID) (int64, error)

	// ListByRecipient returns notifications newest first
	ListByRecipient(ctx context.Context, recipientID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[Notification], error)

	CountUnread(ctx context.Context, recipientID kernel.UserID) (int64, error)
}

// Outbox holds side-effect notifications whose insert failed, for later redelivery
type Outbox interface {
	Enqueue(ctx context.Context, msg *OutboxMessage) error

	// Dequeue blocks up to timeout and returns nil when nothing is ready
	Dequeue(ctx context.Context, timeout time.Duration) (*OutboxMessage, error)

	// EnqueueDelayed schedules msg to become ready after delay
	EnqueueDelayed(ctx context.Context, msg *OutboxMessage, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed messages and returns how many moved
	MoveDelayedToReady(ctx context.Context) (int, error)

	Size(ctx context.Context) (int64, error)
}
