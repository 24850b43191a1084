package application

import (
	"context"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

type Repository interface {
	// Create inserts a new application. A second application for the same
	// student and internship fails with ErrDuplicate.
	Create(ctx context.Context, app *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// FindByStudentAndInternship retrieves the student's application to an internship
	FindByStudentAndInternship(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (*Application, error)

	// ExistsByStudentAndInternship checks whether the student already applied
	ExistsByStudentAndInternship(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (bool, error)

	// AppendTransition atomically appends entry to the timeline and sets
	// status and current round from it, provided the stored status still equals
	// expected. Otherwise it returns ErrConcurrentUpdate (or ErrApplicationNotFound).
	AppendTransition(ctx context.Context, id kernel.ApplicationID, expected Status, entry TimelineEntry) error

	// ListByStudent retrieves a student's applications, newest first
	ListByStudent(ctx context.Context, studentID kernel.UserID) ([]*ApplicationWithDetails, error)

	// ListByInternship retrieves applications to an internship, newest first
	ListByInternship(ctx context.Context, internshipID kernel.InternshipID) ([]*ApplicationWithDetails, error)

	// ListByPoster retrieves applications to any internship posted by an admin
	ListByPoster(ctx context.Context, posterID kernel.UserID) ([]*ApplicationWithDetails, error)

	// ListRecent retrieves the latest applications across all internships
	ListRecent(ctx context.Context, limit int) ([]*ApplicationWithDetails, error)

	// List retrieves every application, newest first
	List(ctx context.Context) ([]*ApplicationWithDetails, error)
}

// ResumeInspector checks that an uploaded file really is a readable document
type ResumeInspector interface {
	Inspect(data []byte) (pages int, err error)
}
