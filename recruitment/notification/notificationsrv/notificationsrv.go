package notificationsrv

import (
	"context"
	"math"
	"time"

	"github.com/Abraxas-365/internhub/internal/metrics"
	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/google/uuid"
)

const (
	DefaultMaxAttempts = 5
	DefaultBaseBackoff = 30 * time.Second
)

// NotificationService stores in-app notifications. Side-effect notifications that
// fail to insert are handed to the outbox for redelivery.
type NotificationService struct {
	repo        notification.Repository
	outbox      notification.Outbox
	maxAttempts int
	baseBackoff time.Duration
	now         func() time.Time
}

// NewNotificationService creates the service. outbox may be nil, in which case
// failed deliveries are only logged.
func NewNotificationService(repo notification.Repository, outbox notification.Outbox) *NotificationService {
	return &NotificationService{
		repo:        repo,
		outbox:      outbox,
		maxAttempts: DefaultMaxAttempts,
		baseBackoff: DefaultBaseBackoff,
		now:         time.Now,
	}
}

// WithRetryPolicy overrides the redelivery limits
func (s *NotificationService) WithRetryPolicy(maxAttempts int, baseBackoff time.Duration) *NotificationService {
	if maxAttempts > 0 {
		s.maxAttempts = maxAttempts
	}
	if baseBackoff > 0 {
		s.baseBackoff = baseBackoff
	}
	return s
}

// Create validates and stores a notification
func (s *NotificationService) Create(ctx context.Context, req notification.CreateNotificationRequest) (*notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := build(kernel.NewNotificationID(uuid.NewString()), req, s.now())
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, errx.Wrap(err, "failed to create notification", errx.TypeInternal)
	}
	return n, nil
}

// Notify delivers a side-effect notification. When the insert fails the
// notification is queued for redelivery and the original error is returned
// for the caller to log; it never rolls anything back.
func (s *NotificationService) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	now := s.now()
	n := build(kernel.NewNotificationID(uuid.NewString()), req, now)
	err := s.repo.Create(ctx, n)
	if err == nil {
		return nil
	}

	metrics.RecordNotificationFailure()
	fields := logx.Fields{
		"notification_id": n.ID,
		"recipient_id":    req.RecipientID,
		"title":           req.Title,
	}

	if s.outbox == nil {
		logx.WithFields(fields).Warnf("notification dropped, no outbox configured: %v", err)
		return errx.Wrap(err, "failed to deliver notification", errx.TypeInternal)
	}

	msg := &notification.OutboxMessage{
		ID:         n.ID.String(),
		Request:    req,
		Attempts:   1,
		LastError:  err.Error(),
		EnqueuedAt: now,
	}
	if qerr := s.outbox.Enqueue(ctx, msg); qerr != nil {
		logx.WithFields(fields).Errorf("notification lost, outbox enqueue failed: %v (insert error: %v)", qerr, err)
	} else {
		logx.WithFields(fields).Warnf("notification queued for redelivery: %v", err)
	}
	return errx.Wrap(err, "failed to deliver notification", errx.TypeInternal)
}

// Redeliver retries one outbox message. Failures are rescheduled with
// exponential backoff until the attempt limit, then dropped.
func (s *NotificationService) Redeliver(ctx context.Context, msg *notification.OutboxMessage) error {
	// The id is fixed at first attempt so a retry after an ambiguous failure cannot duplicate.
	n := build(kernel.NewNotificationID(msg.ID), msg.Request, msg.EnqueuedAt)
	err := s.repo.Create(ctx, n)
	if err == nil {
		metrics.RecordOutboxRedelivery("delivered")
		logx.WithFields(logx.Fields{"notification_id": msg.ID, "attempts": msg.Attempts + 1}).Info("notification redelivered")
		return nil
	}

	msg.Attempts++
	msg.LastError = err.Error()

	if msg.Attempts >= s.maxAttempts {
		metrics.RecordOutboxRedelivery("dropped")
		logx.WithFields(logx.Fields{
			"notification_id": msg.ID,
			"recipient_id":    msg.Request.RecipientID,
			"attempts":        msg.Attempts,
		}).Errorf("notification dropped after max attempts: %v", err)
		return errx.Wrap(err, "notification redelivery exhausted", errx.TypeInternal)
	}

	delay := s.backoff(msg.Attempts)
	if qerr := s.outbox.EnqueueDelayed(ctx, msg, delay); qerr != nil {
		return errx.Wrap(qerr, "failed to reschedule notification", errx.TypeInternal)
	}

	metrics.RecordOutboxRedelivery("retried")
	logx.Warnf("notification %s redelivery failed (attempt %d), retrying in %s: %v", msg.ID, msg.Attempts, delay, err)
	return nil
}

func (s *NotificationService) backoff(attempts int) time.Duration {
	return time.Duration(float64(s.baseBackoff) * math.Pow(2, float64(attempts-1)))
}

// MarkRead marks one notification when an id is given, otherwise every unread
// notification of the recipient. It returns how many were marked.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID kernel.UserID, req notification.MarkReadRequest) (int64, error) {
	if req.NotificationID == nil || req.NotificationID.IsEmpty() {
		count, err := s.repo.MarkAllRead(ctx, recipientID)
		if err != nil {
			return 0, errx.Wrap(err, "failed to mark notifications read", errx.TypeInternal)
		}
		return count, nil
	}

	n, err := s.repo.GetByID(ctx, *req.NotificationID)
	if err != nil {
		return 0, errx.Wrap(err, "failed to load notification", errx.TypeInternal)
	}
	if !n.BelongsTo(recipientID) {
		return 0, notification.ErrForbidden().WithDetail("notification_id", n.ID.String())
	}
	if n.Read {
		return 0, nil
	}

	if err := s.repo.MarkRead(ctx, n.ID); err != nil {
		return 0, errx.Wrap(err, "failed to mark notification read", errx.TypeInternal)
	}
	return 1, nil
}

// List returns the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipientID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	page, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list notifications", errx.TypeInternal)
	}
	return page, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, errx.Wrap(err, "failed to count notifications", errx.TypeInternal)
	}
	return count, nil
}

func build(id kernel.NotificationID, req notification.CreateNotificationRequest, createdAt time.Time) *notification.Notification {
	return &notification.Notification{
		ID:            id,
		RecipientID:   req.RecipientID,
		Title:         req.Title,
		Message:       req.Message,
		Type:          req.Type,
		ApplicationID: req.ApplicationID,
		CreatedAt:     createdAt,
	}
}
