package internshipinfra

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "title", "company", "location", "description", "requirements",
	"duration_months", "stipend", "deadline", "posted_by", "created_at", "updated_at",
}

func newMock(t *testing.T) (*PostgresInternshipRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresInternshipRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestGetByID_DecodesRequirements(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM internships WHERE id = $1")).
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("i1", "Go intern", "Acme", "Remote", "desc", `{go,"sql basics"}`, 3, "$500", now, "a1", now, now))

	got, err := repo.GetByID(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql basics"}, got.Requirements)
	assert.Equal(t, 3, got.DurationMonths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM internships WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, internship.CodeInternshipNotFound))
}

func TestDelete_NoRows(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM internships WHERE id = $1")).
		WithArgs("i1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "i1")
	assert.True(t, errx.IsCode(err, internship.CodeInternshipNotFound))
}
