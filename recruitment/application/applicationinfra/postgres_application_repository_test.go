package applicationinfra

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "student_id", "internship_id", "status", "current_round", "timeline",
	"resume_filename", "resume_content_type", "resume_blob_ref", "resume_size",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresApplicationRepository(sqlx.NewDb(db, "postgres")), mock
}

func sample(now time.Time) *application.Application {
	return application.New("app-1", "stu-1", "int-1", application.Resume{
		Filename:    "cv.pdf",
		ContentType: "application/pdf",
		BlobRef:     "resumes/app-1/cv.pdf",
		Size:        2048,
	}, now)
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), sample(time.Now()))
	assert.True(t, errx.IsCode(err, application.CodeDuplicate))
}

func TestCreate_StoresSeedTimeline(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WithArgs(
			"app-1", "stu-1", "int-1", "pending", 1,
			`[{"round":1,"status":"pending","updated_by":"stu-1","updated_at":"2024-01-02T03:04:05Z"}]`,
			"cv.pdf", "application/pdf", "resumes/app-1/cv.pdf", int64(2048),
			now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), sample(now)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_DecodesTimeline(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = $1")).
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"app-1", "stu-1", "int-1", "screening", 2,
			[]byte(`[{"round":1,"status":"pending","updated_by":"stu-1","updated_at":"2024-01-02T03:04:05Z"},
			        {"round":2,"status":"screening","feedback":"good","updated_by":"adm-1","updated_at":"2024-01-03T03:04:05Z"}]`),
			"cv.pdf", "application/pdf", "resumes/app-1/cv.pdf", 2048, now, now,
		))

	app, err := repo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, app.Timeline, 2)
	assert.Equal(t, "good", app.Timeline[1].Feedback)
	assert.Equal(t, application.StatusScreening, app.Status)
	assert.Equal(t, "resumes/app-1/cv.pdf", app.Resume.BlobRef.String())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM applications WHERE id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func entry() application.TimelineEntry {
	return application.TimelineEntry{
		Round:     2,
		Status:    application.StatusScreening,
		UpdatedBy: "adm-1",
		UpdatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestAppendTransition_SingleGuardedUpdate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("timeline = timeline || $3::jsonb")).
		WithArgs(
			"screening", 2,
			`[{"round":2,"status":"screening","updated_by":"adm-1","updated_at":"2024-01-03T00:00:00Z"}]`,
			sqlmock.AnyArg(), "app-1", "pending",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendTransition(context.Background(), "app-1", application.StatusPending, entry())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendTransition_StatusChangedUnderneath(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND status = $6")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)")).
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.AppendTransition(context.Background(), "app-1", application.StatusPending, entry())
	assert.True(t, errx.IsCode(err, application.CodeConcurrentUpdate))
}

func TestAppendTransition_Missing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND status = $6")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.AppendTransition(context.Background(), "gone", application.StatusPending, entry())
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func TestListByPoster_JoinsDetails(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	cols := append(append([]string{}, columns...), "student_name", "student_email", "internship_title", "internship_company")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.posted_by = $1 ORDER BY a.created_at DESC")).
		WithArgs("adm-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"app-1", "stu-1", "int-1", "pending", 1, []byte(`[]`),
			"cv.pdf", "application/pdf", "resumes/app-1/cv.pdf", 2048, now, now,
			"Asha", "asha@example.com", "Backend Intern", "Acme",
		))

	list, err := repo.ListByPoster(context.Background(), "adm-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha", list[0].StudentName)
	assert.Equal(t, "Backend Intern", list[0].InternshipTitle)
	assert.Empty(t, list[0].Timeline)
}
