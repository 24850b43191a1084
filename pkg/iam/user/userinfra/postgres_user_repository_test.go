package userinfra

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/iam/user"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &user.User{ID: "u1", Email: "a@x.io", Role: kernel.RoleAdmin})
	assert.True(t, errx.IsCode(err, user.CodeEmailTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "department", "year", "bio", "created_at", "updated_at"}).
		AddRow("u1", "Ada", "ada@x.io", "hash", "student", "CS", "3", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@x.io").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "ada@x.io")
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("u1"), u.ID)
	assert.Equal(t, kernel.RoleStudent, u.Role)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, user.CodeUserNotFound))
}
