package applicationinfra

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

// timeline is stored as a JSONB array
type timeline []application.TimelineEntry

func (t timeline) Value() (driver.Value, error) {
	if t == nil {
		t = timeline{}
	}
	data, err := json.Marshal([]application.TimelineEntry(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (t *timeline) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = timeline{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported timeline type %T", src)
	}
	return json.Unmarshal(data, (*[]application.TimelineEntry)(t))
}

type applicationModel struct {
	ID                string    `db:"id"`
	StudentID         string    `db:"student_id"`
	InternshipID      string    `db:"internship_id"`
	Status            string    `db:"status"`
	CurrentRound      int       `db:"current_round"`
	Timeline          timeline  `db:"timeline"`
	ResumeFilename    string    `db:"resume_filename"`
	ResumeContentType string    `db:"resume_content_type"`
	ResumeBlobRef     string    `db:"resume_blob_ref"`
	ResumeSize        int64     `db:"resume_size"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// applicationWithDetailsModel for joined queries
type applicationWithDetailsModel struct {
	applicationModel
	StudentName       string `db:"student_name"`
	StudentEmail      string `db:"student_email"`
	InternshipTitle   string `db:"internship_title"`
	InternshipCompany string `db:"internship_company"`
}

func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:           kernel.ApplicationID(m.ID),
		StudentID:    kernel.UserID(m.StudentID),
		InternshipID: kernel.InternshipID(m.InternshipID),
		Status:       application.Status(m.Status),
		CurrentRound: m.CurrentRound,
		Timeline:     []application.TimelineEntry(m.Timeline),
		Resume: application.Resume{
			Filename:    m.ResumeFilename,
			ContentType: m.ResumeContentType,
			BlobRef:     kernel.BlobRef(m.ResumeBlobRef),
			Size:        m.ResumeSize,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *applicationWithDetailsModel) toDetails() *application.ApplicationWithDetails {
	return &application.ApplicationWithDetails{
		Application:       *m.applicationModel.toEntity(),
		StudentName:       m.StudentName,
		StudentEmail:      kernel.Email(m.StudentEmail),
		InternshipTitle:   m.InternshipTitle,
		InternshipCompany: m.InternshipCompany,
	}
}

func fromEntity(app *application.Application) *applicationModel {
	return &applicationModel{
		ID:                app.ID.String(),
		StudentID:         app.StudentID.String(),
		InternshipID:      app.InternshipID.String(),
		Status:            string(app.Status),
		CurrentRound:      app.CurrentRound,
		Timeline:          timeline(app.Timeline),
		ResumeFilename:    app.Resume.Filename,
		ResumeContentType: app.Resume.ContentType,
		ResumeBlobRef:     app.Resume.BlobRef.String(),
		ResumeSize:        app.Resume.Size,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}
}

const selectColumns = `
	id, student_id, internship_id, status, current_round, timeline,
	resume_filename, resume_content_type, resume_blob_ref, resume_size,
	created_at, updated_at
`

const selectDetails = `
	SELECT
		a.id, a.student_id, a.internship_id, a.status, a.current_round, a.timeline,
		a.resume_filename, a.resume_content_type, a.resume_blob_ref, a.resume_size,
		a.created_at, a.updated_at,
		COALESCE(u.name, '') AS student_name,
		COALESCE(u.email, '') AS student_email,
		i.title AS internship_title,
		i.company AS internship_company
	FROM applications a
	INNER JOIN internships i ON i.id = a.internship_id
	LEFT JOIN users u ON u.id = a.student_id
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts an application. The (student, internship) unique constraint
// surfaces as ErrDuplicate.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, student_id, internship_id, status, current_round, timeline,
			resume_filename, resume_content_type, resume_blob_ref, resume_size,
			created_at, updated_at
		) VALUES (
			:id, :student_id, :internship_id, :status, :current_round, :timeline,
			:resume_filename, :resume_content_type, :resume_blob_ref, :resume_size,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(app)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return application.ErrDuplicate().
					WithDetail("internship_id", app.InternshipID.String())
			case "23503": // foreign_key_violation
				return fmt.Errorf("invalid student or internship reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var model applicationModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM applications WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}
	return model.toEntity(), nil
}

// FindByStudentAndInternship retrieves the student's application to an internship
func (r *PostgresApplicationRepository) FindByStudentAndInternship(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (*application.Application, error) {
	var model applicationModel
	query := `SELECT ` + selectColumns + ` FROM applications WHERE student_id = $1 AND internship_id = $2`
	err := r.db.GetContext(ctx, &model, query, studentID.String(), internshipID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().
				WithDetail("student_id", studentID.String()).
				WithDetail("internship_id", internshipID.String())
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return model.toEntity(), nil
}

// ExistsByStudentAndInternship checks whether the student already applied
func (r *PostgresApplicationRepository) ExistsByStudentAndInternship(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, studentID.String(), internshipID.String()); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// AppendTransition appends entry to the timeline in a single statement,
// guarded by the expected current status.
func (r *PostgresApplicationRepository) AppendTransition(ctx context.Context, id kernel.ApplicationID, expected application.Status, entry application.TimelineEntry) error {
	appended, err := timeline{entry}.Value()
	if err != nil {
		return fmt.Errorf("failed to encode timeline entry: %w", err)
	}

	query := `
		UPDATE applications SET
			status = $1,
			current_round = $2,
			timeline = timeline || $3::jsonb,
			updated_at = $4
		WHERE id = $5 AND status = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		string(entry.Status),
		entry.Round,
		appended,
		entry.UpdatedAt,
		id.String(),
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to append transition: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id.String()); err != nil {
		return fmt.Errorf("failed to check application existence: %w", err)
	}
	if !exists {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return application.ErrConcurrentUpdate().
		WithDetail("application_id", id.String()).
		WithDetail("expected_status", expected)
}

// ListByStudent retrieves a student's applications, newest first
func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	return r.selectDetails(ctx, `WHERE a.student_id = $1 ORDER BY a.created_at DESC`, studentID.String())
}

// ListByInternship retrieves applications to an internship, newest first
func (r *PostgresApplicationRepository) ListByInternship(ctx context.Context, internshipID kernel.InternshipID) ([]*application.ApplicationWithDetails, error) {
	return r.selectDetails(ctx, `WHERE a.internship_id = $1 ORDER BY a.created_at DESC`, internshipID.String())
}

// ListByPoster retrieves applications to any internship posted by the admin
func (r *PostgresApplicationRepository) ListByPoster(ctx context.Context, posterID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	return r.selectDetails(ctx, `WHERE i.posted_by = $1 ORDER BY a.created_at DESC`, posterID.String())
}

// ListRecent retrieves the latest applications
func (r *PostgresApplicationRepository) ListRecent(ctx context.Context, limit int) ([]*application.ApplicationWithDetails, error) {
	return r.selectDetails(ctx, `ORDER BY a.created_at DESC LIMIT $1`, limit)
}

// List retrieves every application
func (r *PostgresApplicationRepository) List(ctx context.Context) ([]*application.ApplicationWithDetails, error) {
	return r.selectDetails(ctx, `ORDER BY a.created_at DESC`)
}

func (r *PostgresApplicationRepository) selectDetails(ctx context.Context, clause string, args ...any) ([]*application.ApplicationWithDetails, error) {
	var models []applicationWithDetailsModel
	if err := r.db.SelectContext(ctx, &models, selectDetails+clause, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	out := make([]*application.ApplicationWithDetails, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDetails())
	}
	return out, nil
}
