package internshipsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/dashboard"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/google/uuid"
)

// InternshipService provides business operations for internships
type InternshipService struct {
	repo internship.Repository
	now  func() time.Time
}

// NewInternshipService creates a new instance of the internship service
func NewInternshipService(repo internship.Repository) *InternshipService {
	return &InternshipService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateInternship posts a new internship owned by posterID
func (s *InternshipService) CreateInternship(ctx context.Context, posterID kernel.UserID, req internship.CreateInternshipRequest) (*internship.Internship, error) {
	i := req.ToEntity()
	if err := i.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	i.ID = kernel.NewInternshipID(uuid.NewString())
	i.PostedBy = posterID
	i.CreatedAt = now
	i.UpdatedAt = now

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, errx.Wrap(err, "failed to create internship", errx.TypeInternal)
	}

	logx.WithFields(logx.Fields{"internship_id": i.ID, "posted_by": posterID}).Info("internship posted")
	return i, nil
}

// GetInternship retrieves an internship by ID
func (s *InternshipService) GetInternship(ctx context.Context, id kernel.InternshipID) (*internship.Internship, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load internship", errx.TypeInternal)
	}
	return i, nil
}

// UpdateInternship edits an internship. Only the poster may do so.
func (s *InternshipService) UpdateInternship(ctx context.Context, id kernel.InternshipID, actorID kernel.UserID, req internship.UpdateInternshipRequest) (*internship.Internship, error) {
	i, err := s.loadOwned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	req.Apply(i)
	if err := i.Validate(); err != nil {
		return nil, err
	}
	i.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, errx.Wrap(err, "failed to update internship", errx.TypeInternal)
	}
	return i, nil
}

// DeleteInternship removes an internship that has no applications
func (s *InternshipService) DeleteInternship(ctx context.Context, id kernel.InternshipID, actorID kernel.UserID) error {
	if _, err := s.loadOwned(ctx, id, actorID); err != nil {
		return err
	}

	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to count applications", errx.TypeInternal)
	}
	if count > 0 {
		return internship.ErrHasApplications().WithDetail("applications", count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete internship", errx.TypeInternal)
	}
	return nil
}

// SearchInternships filters and sorts every internship, then pages the result
func (s *InternshipService) SearchInternships(ctx context.Context, filters dashboard.Filters, pagination kernel.PaginationOptions) (kernel.Paginated[*internship.Internship], error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return kernel.Paginated[*internship.Internship]{}, errx.Wrap(err, "failed to list internships", errx.TypeInternal)
	}
	return kernel.Paginate(dashboard.FilterInternships(all, filters), pagination), nil
}

// ListAll returns every internship, newest first
func (s *InternshipService) ListAll(ctx context.Context) ([]*internship.Internship, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list internships", errx.TypeInternal)
	}
	return all, nil
}

// ListMine returns the internships posted by an admin
func (s *InternshipService) ListMine(ctx context.Context, posterID kernel.UserID) ([]*internship.Internship, error) {
	list, err := s.repo.ListByPoster(ctx, posterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list internships", errx.TypeInternal)
	}
	return list, nil
}

// Summary counts the admin's postings and how many are still active
func (s *InternshipService) Summary(ctx context.Context, posterID kernel.UserID) (dashboard.InternshipSummary, error) {
	list, err := s.ListMine(ctx, posterID)
	if err != nil {
		return dashboard.InternshipSummary{}, err
	}
	return dashboard.SummarizeInternships(list, s.now()), nil
}

func (s *InternshipService) loadOwned(ctx context.Context, id kernel.InternshipID, actorID kernel.UserID) (*internship.Internship, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load internship", errx.TypeInternal)
	}
	if !i.IsOwnedBy(actorID) {
		return nil, internship.ErrForbidden().
			WithDetail("internship_id", id.String())
	}
	return i, nil
}
