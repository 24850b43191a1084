package internshipinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresInternshipRepository implements internship.Repository using PostgreSQL
type PostgresInternshipRepository struct {
	db *sqlx.DB
}

// NewPostgresInternshipRepository creates a new PostgreSQL internship repository
func NewPostgresInternshipRepository(db *sqlx.DB) *PostgresInternshipRepository {
	return &PostgresInternshipRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type internshipModel struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Company        string         `db:"company"`
	Location       string         `db:"location"`
	Description    string         `db:"description"`
	Requirements   pq.StringArray `db:"requirements"`
	DurationMonths int            `db:"duration_months"`
	Stipend        string         `db:"stipend"`
	Deadline       time.Time      `db:"deadline"`
	PostedBy       string         `db:"posted_by"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (m *internshipModel) toEntity() *internship.Internship {
	reqs := []string(m.Requirements)
	if reqs == nil {
		reqs = []string{}
	}
	return &internship.Internship{
		ID:             kernel.InternshipID(m.ID),
		Title:          m.Title,
		Company:        m.Company,
		Location:       m.Location,
		Description:    m.Description,
		Requirements:   reqs,
		DurationMonths: m.DurationMonths,
		Stipend:        m.Stipend,
		Deadline:       m.Deadline,
		PostedBy:       kernel.UserID(m.PostedBy),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromEntity(i *internship.Internship) *internshipModel {
	reqs := i.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &internshipModel{
		ID:             i.ID.String(),
		Title:          i.Title,
		Company:        i.Company,
		Location:       i.Location,
		Description:    i.Description,
		Requirements:   pq.StringArray(reqs),
		DurationMonths: i.DurationMonths,
		Stipend:        i.Stipend,
		Deadline:       i.Deadline,
		PostedBy:       i.PostedBy.String(),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

const selectColumns = `
	id, title, company, location, description, requirements,
	duration_months, stipend, deadline, posted_by, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new internship
func (r *PostgresInternshipRepository) Create(ctx context.Context, i *internship.Internship) error {
	query := `
		INSERT INTO internships (
			id, title, company, location, description, requirements,
			duration_months, stipend, deadline, posted_by, created_at, updated_at
		) VALUES (
			:id, :title, :company, :location, :description, :requirements,
			:duration_months, :stipend, :deadline, :posted_by, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(i)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid posted_by user_id: %w", err)
		}
		return fmt.Errorf("failed to create internship: %w", err)
	}
	return nil
}

// Update updates an existing internship. The poster never changes.
func (r *PostgresInternshipRepository) Update(ctx context.Context, i *internship.Internship) error {
	query := `
		UPDATE internships SET
			title = :title,
			company = :company,
			location = :location,
			description = :description,
			requirements = :requirements,
			duration_months = :duration_months,
			stipend = :stipend,
			deadline = :deadline,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, fromEntity(i))
	if err != nil {
		return fmt.Errorf("failed to update internship: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return internship.ErrInternshipNotFound().WithDetail("internship_id", i.ID.String())
	}
	return nil
}

// Delete deletes an internship by ID
func (r *PostgresInternshipRepository) Delete(ctx context.Context, id kernel.InternshipID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM internships WHERE id = $1`, id.String())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return internship.ErrHasApplications()
		}
		return fmt.Errorf("failed to delete internship: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return internship.ErrInternshipNotFound().WithDetail("internship_id", id.String())
	}
	return nil
}

// GetByID retrieves an internship by ID
func (r *PostgresInternshipRepository) GetByID(ctx context.Context, id kernel.InternshipID) (*internship.Internship, error) {
	var model internshipModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM internships WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internship.ErrInternshipNotFound().WithDetail("internship_id", id.String())
		}
		return nil, fmt.Errorf("failed to get internship by id: %w", err)
	}
	return model.toEntity(), nil
}

// List retrieves every internship, newest first
func (r *PostgresInternshipRepository) List(ctx context.Context) ([]*internship.Internship, error) {
	var models []internshipModel
	if err := r.db.SelectContext(ctx, &models, `SELECT `+selectColumns+` FROM internships ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	return toEntities(models), nil
}

// ListByPoster retrieves internships posted by a specific admin
func (r *PostgresInternshipRepository) ListByPoster(ctx context.Context, userID kernel.UserID) ([]*internship.Internship, error) {
	var models []internshipModel
	query := `SELECT ` + selectColumns + ` FROM internships WHERE posted_by = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &models, query, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to list internships by poster: %w", err)
	}
	return toEntities(models), nil
}

// CountApplications counts applications for an internship
func (r *PostgresInternshipRepository) CountApplications(ctx context.Context, id kernel.InternshipID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM applications WHERE internship_id = $1`, id.String()); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func toEntities(models []internshipModel) []*internship.Internship {
	out := make([]*internship.Internship, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out
}
