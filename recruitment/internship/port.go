package internship

import (
	"context"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

type Repository interface {
	// Create creates a new internship
	Create(ctx context.Context, i *Internship) error

	// Update updates an existing internship
	Update(ctx context.Context, i *Internship) error

	// Delete deletes an internship by ID
	Delete(ctx context.Context, id kernel.InternshipID) error

	// GetByID retrieves an internship by ID
	GetByID(ctx context.Context, id kernel.InternshipID) (*Internship, error)

	// List retrieves every internship, newest first
	List(ctx context.Context) ([]*Internship, error)

	// ListByPoster retrieves internships posted by an admin, newest first
	ListByPoster(ctx context.Context, userID kernel.UserID) ([]*Internship, error)

	CountApplications(ctx context.Context, id kernel.InternshipID) (int64, error)
}
