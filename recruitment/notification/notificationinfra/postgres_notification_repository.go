package notificationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/jmoiron/sqlx"
)

// PostgresNotificationRepository implements notification.Repository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

type notificationModel struct {
	ID            string         `db:"id"`
	RecipientID   string         `db:"recipient_id"`
	Title         string         `db:"title"`
	Message       string         `db:"message"`
	Type          string         `db:"type"`
	ApplicationID sql.NullString `db:"application_id"`
	Read          bool           `db:"read"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (m *notificationModel) toEntity() notification.Notification {
	n := notification.Notification{
		ID:          kernel.NotificationID(m.ID),
		RecipientID: kernel.UserID(m.RecipientID),
		Title:       m.Title,
		Message:     m.Message,
		Type:        notification.Type(m.Type),
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
	if m.ApplicationID.Valid {
		id := kernel.ApplicationID(m.ApplicationID.String)
		n.ApplicationID = &id
	}
	return n
}

func fromEntity(n *notification.Notification) *notificationModel {
	m := &notificationModel{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
	if n.ApplicationID != nil {
		m.ApplicationID = sql.NullString{String: n.ApplicationID.String(), Valid: true}
	}
	return m
}

const selectColumns = `id, recipient_id, title, message, type, application_id, read, created_at`

// Create inserts a notification. Re-inserting the same id is a no-op so outbox
// redelivery stays idempotent.
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (
			id, recipient_id, title, message, type, application_id, read, created_at
		) VALUES (
			:id, :recipient_id, :title, :message, :type, :application_id, :read, :created_at
		)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(n)); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	var model notificationModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM notifications WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	n := model.toEntity()
	return &n, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
	}
	return nil
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND read = FALSE`,
		recipientID.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.RowsAffected()
}

func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID kernel.UserID, unreadOnly bool, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	where := `WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND read = FALSE`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, recipientID.String()); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var models []notificationModel
	if err := r.db.SelectContext(ctx, &models, query, recipientID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	items := make([]notification.Notification, 0, len(models))
	for i := range models {
		items = append(items, models[i].toEntity())
	}

	page := kernel.NewPaginated(items, pagination.Page, pagination.PageSize, total)
	return &page, nil
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = FALSE`,
		recipientID.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
