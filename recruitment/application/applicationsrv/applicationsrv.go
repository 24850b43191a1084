package applicationsrv

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/internal/metrics"
	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/fsx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/google/uuid"
)

// RecentLimit is how many applications the recent listing returns
const RecentLimit = 10

// Notifier delivers in-app notifications on a best-effort basis
type Notifier interface {
	Notify(ctx context.Context, req notification.CreateNotificationRequest) error
}

// ApplicationService runs the application lifecycle: submission, review
// transitions and the reads around them.
type ApplicationService struct {
	applicationRepo application.Repository
	internshipRepo  internship.Repository
	notifier        Notifier
	fileSystem      fsx.FileSystem
	inspector       application.ResumeInspector
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service.
// inspector may be nil to skip document inspection.
func NewApplicationService(
	applicationRepo application.Repository,
	internshipRepo internship.Repository,
	notifier Notifier,
	fileSystem fsx.FileSystem,
	inspector application.ResumeInspector,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		internshipRepo:  internshipRepo,
		notifier:        notifier,
		fileSystem:      fileSystem,
		inspector:       inspector,
		now:             time.Now,
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

// CreateApplication submits a student's resume to an internship. Every check
// runs before anything is written.
func (s *ApplicationService) CreateApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	if req.StudentID.IsEmpty() || req.InternshipID.IsEmpty() {
		return nil, application.ErrInvalidRequest().WithDetail("reason", "student and internship are required")
	}

	posting, err := s.internshipRepo.GetByID(ctx, req.InternshipID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load internship", errx.TypeInternal)
	}

	now := s.now()
	if !posting.IsOpen(now) {
		return nil, application.ErrDeadlinePassed().
			WithDetail("internship_id", posting.ID.String()).
			WithDetail("deadline", posting.Deadline)
	}

	exists, err := s.applicationRepo.ExistsByStudentAndInternship(ctx, req.StudentID, req.InternshipID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check duplicate application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrDuplicate().
			WithDetail("internship_id", req.InternshipID.String())
	}

	if err := application.ValidateResume(req.ContentType, int64(len(req.ResumeData))); err != nil {
		return nil, err
	}
	if s.inspector != nil {
		if _, err := s.inspector.Inspect(req.ResumeData); err != nil {
			return nil, application.ErrUnsupportedFileType().
				WithDetail("reason", "file is not a readable PDF").
				WithCause(err)
		}
	}

	id := kernel.NewApplicationID(uuid.NewString())
	blobPath := s.fileSystem.Join("resumes", id.String(), resumeFilename(req.Filename))
	if err := s.fileSystem.WriteFile(ctx, blobPath, req.ResumeData); err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeExternal)
	}

	app := application.New(id, req.StudentID, req.InternshipID, application.Resume{
		Filename:    resumeFilename(req.Filename),
		ContentType: req.ContentType,
		BlobRef:     kernel.BlobRef(blobPath),
		Size:        int64(len(req.ResumeData)),
	}, now)

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if derr := s.fileSystem.DeleteFile(ctx, blobPath); derr != nil {
			logx.Warnf("failed to remove orphaned resume %s: %v", blobPath, derr)
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	metrics.RecordApplicationCreated()
	logx.WithFields(logx.Fields{
		"application_id": app.ID,
		"student_id":     app.StudentID,
		"internship_id":  app.InternshipID,
	}).Info("application submitted")

	title, message := application.NewApplicationMessage(posting.Title)
	s.notify(ctx, posting.PostedBy, title, message, app.ID)

	return app, nil
}

// UpdateStatus moves one application through the review pipeline. Only the
// admin who posted the internship may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, adminID kernel.UserID, req application.UpdateStatusRequest) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
	}

	posting, err := s.loadOwnedInternship(ctx, app.InternshipID, adminID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, app, posting, adminID, req.Status, req.Feedback, req.Round); err != nil {
		return nil, err
	}
	return app, nil
}

// BulkUpdateStatus applies one transition to several students' applications
// for the same internship. Students without an application, and applications
// that cannot move, are skipped.
func (s *ApplicationService) BulkUpdateStatus(ctx context.Context, adminID kernel.UserID, req application.BulkUpdateStatusRequest) (*application.BulkUpdateResult, error) {
	if len(req.StudentIDs) == 0 {
		return nil, application.ErrInvalidRequest().WithDetail("field", "student_ids")
	}

	posting, err := s.loadOwnedInternship(ctx, req.InternshipID, adminID)
	if err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, application.ErrInvalidTransition().WithDetail("new_status", req.Status)
	}

	result := &application.BulkUpdateResult{Total: len(req.StudentIDs)}
	for _, studentID := range req.StudentIDs {
		app, err := s.applicationRepo.FindByStudentAndInternship(ctx, studentID, req.InternshipID)
		if err != nil {
			if !errx.IsCode(err, application.CodeApplicationNotFound) {
				logx.Warnf("bulk update: failed to load application for student %s: %v", studentID, err)
			}
			result.Skipped++
			continue
		}

		if err := s.transition(ctx, app, posting, adminID, req.Status, req.Feedback, 0); err != nil {
			logx.WithFields(logx.Fields{
				"application_id": app.ID,
				"student_id":     studentID,
			}).Warnf("bulk update skipped application: %v", err)
			result.Skipped++
			continue
		}
		result.Updated++
	}

	logx.Infof("bulk status update on internship %s: %d updated, %d skipped", posting.ID, result.Updated, result.Skipped)
	return result, nil
}

// transition applies the rule on app, persists it with a compare-and-swap on
// the prior status and notifies the student. app reflects the stored state on success.
func (s *ApplicationService) transition(
	ctx context.Context,
	app *application.Application,
	posting *internship.Internship,
	adminID kernel.UserID,
	newStatus application.Status,
	feedback string,
	explicitRound int,
) error {
	prior := app.Status
	entry, err := app.Transition(newStatus, adminID, feedback, explicitRound, s.now())
	if err != nil {
		return err
	}

	if err := s.applicationRepo.AppendTransition(ctx, app.ID, prior, entry); err != nil {
		if !errx.IsCode(err, application.CodeConcurrentUpdate) {
			return errx.Wrap(err, "failed to update application status", errx.TypeInternal)
		}

		metrics.RecordTransitionConflict()
		current, rerr := s.applicationRepo.GetByID(ctx, app.ID)
		if rerr == nil && current.IsTerminal() {
			return application.ErrInvalidTransition().
				WithDetail("current_status", current.Status).
				WithDetail("reason", "application is already "+string(current.Status))
		}
		return err
	}

	metrics.RecordTransition(string(newStatus))
	logx.WithFields(logx.Fields{
		"application_id": app.ID,
		"from":           prior,
		"to":             newStatus,
		"round":          entry.Round,
	}).Info("application status updated")

	title, message := application.StatusChangeMessage(newStatus, posting.Title, entry.Feedback)
	s.notify(ctx, app.StudentID, title, message, app.ID)
	return nil
}

// notify never fails the caller; the notifier queues what it cannot store
func (s *ApplicationService) notify(ctx context.Context, recipient kernel.UserID, title, message string, appID kernel.ApplicationID) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID:   recipient,
		Title:         title,
		Message:       message,
		Type:          notification.TypeApplication,
		ApplicationID: &appID,
	})
	if err != nil {
		logx.Warnf("notification to %s for application %s not delivered: %v", recipient, appID, err)
	}
}

// ============================================================================
// Reads
// ============================================================================

// GetApplication returns one application. Students may only read their own.
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID, callerID kernel.UserID, role kernel.Role) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
	}
	if role != kernel.RoleAdmin && !app.BelongsTo(callerID) {
		return nil, application.ErrForbidden().WithDetail("application_id", id.String())
	}
	return app, nil
}

// ListMine returns the student's own applications
func (s *ApplicationService) ListMine(ctx context.Context, studentID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	apps, err := s.applicationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListForInternship returns the applications to an internship. The posting
// admin sees all of them; a student sees only their own.
func (s *ApplicationService) ListForInternship(ctx context.Context, internshipID kernel.InternshipID, callerID kernel.UserID, role kernel.Role) ([]*application.ApplicationWithDetails, error) {
	if role != kernel.RoleAdmin {
		app, err := s.applicationRepo.FindByStudentAndInternship(ctx, callerID, internshipID)
		if err != nil {
			if errx.IsCode(err, application.CodeApplicationNotFound) {
				return []*application.ApplicationWithDetails{}, nil
			}
			return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
		}
		return []*application.ApplicationWithDetails{{Application: *app}}, nil
	}

	if _, err := s.loadOwnedInternship(ctx, internshipID, callerID); err != nil {
		return nil, err
	}

	apps, err := s.applicationRepo.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListForAdmin returns applications to every internship the admin posted
func (s *ApplicationService) ListForAdmin(ctx context.Context, adminID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	apps, err := s.applicationRepo.ListByPoster(ctx, adminID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListRecent returns the latest applications across the platform
func (s *ApplicationService) ListRecent(ctx context.Context) ([]*application.ApplicationWithDetails, error) {
	apps, err := s.applicationRepo.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list recent applications", errx.TypeInternal)
	}
	return apps, nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]*application.ApplicationWithDetails, error) {
	apps, err := s.applicationRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListByStudent is the admin view of one student's applications
func (s *ApplicationService) ListByStudent(ctx context.Context, studentID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	return s.ListMine(ctx, studentID)
}

// HasApplied reports whether the student already applied to the internship
func (s *ApplicationService) HasApplied(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (bool, error) {
	exists, err := s.applicationRepo.ExistsByStudentAndInternship(ctx, studentID, internshipID)
	if err != nil {
		return false, errx.Wrap(err, "failed to check application", errx.TypeInternal)
	}
	return exists, nil
}

// DownloadResume returns the stored resume to its student or to the posting admin
func (s *ApplicationService) DownloadResume(ctx context.Context, id kernel.ApplicationID, callerID kernel.UserID, role kernel.Role) (*application.ResumeFile, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
	}

	if role == kernel.RoleAdmin {
		if _, err := s.loadOwnedInternship(ctx, app.InternshipID, callerID); err != nil {
			return nil, application.ErrForbidden().WithDetail("application_id", id.String())
		}
	} else if !app.BelongsTo(callerID) {
		return nil, application.ErrForbidden().WithDetail("application_id", id.String())
	}

	if app.Resume.BlobRef.IsEmpty() {
		return nil, application.ErrResumeNotFound()
	}

	data, err := s.fileSystem.ReadFile(ctx, app.Resume.BlobRef.String())
	if err != nil {
		if errors.Is(err, fsx.ErrNotExist) {
			return nil, application.ErrResumeNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to read resume", errx.TypeExternal)
	}

	return &application.ResumeFile{
		Filename:    app.Resume.Filename,
		ContentType: app.Resume.ContentType,
		Data:        data,
	}, nil
}

func (s *ApplicationService) loadOwnedInternship(ctx context.Context, id kernel.InternshipID, adminID kernel.UserID) (*internship.Internship, error) {
	posting, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load internship", errx.TypeInternal)
	}
	if !posting.IsOwnedBy(adminID) {
		return nil, application.ErrForbidden().
			WithDetail("internship_id", id.String()).
			WithDetail("reason", "only the admin who posted the internship can manage its applications")
	}
	return posting, nil
}

// resumeFilename keeps only the base name of the uploaded file
func resumeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "resume.pdf"
	}
	return name
}
