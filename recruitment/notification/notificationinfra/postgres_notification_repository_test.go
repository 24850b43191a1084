package notificationinfra

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "recipient_id", "title", "message", "type", "application_id", "read", "created_at"}

func newMock(t *testing.T) (*PostgresNotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresNotificationRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreate_IgnoresDuplicateID(t *testing.T) {
	repo, mock := newMock(t)
	appID := kernel.ApplicationID("app-1")

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &notification.Notification{
		ID:            "n1",
		RecipientID:   "u1",
		Title:         "New Application",
		Message:       "msg",
		Type:          notification.TypeApplication,
		ApplicationID: &appID,
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NullApplication(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE id = $1")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("n1", "u1", "Hello", "Welcome", "general", nil, false, now))

	got, err := repo.GetByID(context.Background(), "n1")
	require.NoError(t, err)
	assert.Nil(t, got.ApplicationID)
	assert.Equal(t, notification.TypeGeneral, got.Type)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET read = TRUE WHERE id = $1")).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), "gone")
	assert.True(t, errx.IsCode(err, notification.CodeNotificationNotFound))
}

func TestMarkAllRead_ReturnsCount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE recipient_id = $1 AND read = FALSE")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.MarkAllRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestListByRecipient_UnreadOnlyPaged(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = FALSE")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u1", 2, 2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("n3", "u1", "t", "m", "application", "app-9", false, now))

	page, err := repo.ListByRecipient(context.Background(), "u1", true, kernel.PaginationOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, kernel.ApplicationID("app-9"), *page.Items[0].ApplicationID)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 2, page.Page.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
