package application

import (
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// Status represents where an application is in the review pipeline
type Status string

const (
	StatusPending   Status = "pending"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// AllStatuses lists statuses in pipeline order
var AllStatuses = []Status{StatusPending, StatusScreening, StatusInterview, StatusAccepted, StatusRejected}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScreening, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// AdvancesRound reports whether moving into s opens a new review round
func (s Status) AdvancesRound() bool {
	return s == StatusScreening || s == StatusInterview
}

// MaxResumeSize is the largest accepted resume in bytes
const MaxResumeSize int64 = 5 << 20

// TimelineEntry records one status change
type TimelineEntry struct {
	Round     int           `json:"round"`
	Status    Status        `json:"status"`
	Feedback  string        `json:"feedback,omitempty"`
	UpdatedBy kernel.UserID `json:"updated_by"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Resume is the stored file's metadata. The bytes live in the blob store.
type Resume struct {
	Filename    string         `json:"filename"`
	ContentType string         `json:"content_type"`
	BlobRef     kernel.BlobRef `json:"-"`
	Size        int64          `json:"size"`
}

// Application is a student's application to one internship.
// Status and CurrentRound always mirror the last timeline entry.
type Application struct {
	ID           kernel.ApplicationID `json:"id"`
	StudentID    kernel.UserID        `json:"student_id"`
	InternshipID kernel.InternshipID  `json:"internship_id"`
	Status       Status               `json:"status"`
	CurrentRound int                  `json:"current_round"`
	Timeline     []TimelineEntry      `json:"timeline"`
	Resume       Resume               `json:"resume"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ApplicationWithDetails joins the student and internship shown in listings
type ApplicationWithDetails struct {
	Application
	StudentName       string       `json:"student_name"`
	StudentEmail      kernel.Email `json:"student_email"`
	InternshipTitle   string       `json:"internship_title"`
	InternshipCompany string       `json:"internship_company"`
}

// New builds a pending application with its seed timeline entry
func New(id kernel.ApplicationID, studentID kernel.UserID, internshipID kernel.InternshipID, resume Resume, now time.Time) *Application {
	return &Application{
		ID:           id,
		StudentID:    studentID,
		InternshipID: internshipID,
		Status:       StatusPending,
		CurrentRound: 1,
		Timeline: []TimelineEntry{{
			Round:     1,
			Status:    StatusPending,
			UpdatedBy: studentID,
			UpdatedAt: now,
		}},
		Resume:    resume,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

func (a *Application) BelongsTo(studentID kernel.UserID) bool {
	return a.StudentID == studentID
}

func (a *Application) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// NextRound computes the round recorded for a move to newStatus.
// A positive explicitRound always wins; otherwise screening and interview open a new round.
func (a *Application) NextRound(newStatus Status, explicitRound int) int {
	if explicitRound > 0 {
		return explicitRound
	}
	if newStatus.AdvancesRound() {
		return a.CurrentRound + 1
	}
	return a.CurrentRound
}

// Transition moves the application to newStatus and appends the timeline entry it returns
func (a *Application) Transition(newStatus Status, actor kernel.UserID, feedback string, explicitRound int, now time.Time) (TimelineEntry, error) {
	if a.IsTerminal() {
		return TimelineEntry{}, ErrInvalidTransition().
			WithDetail("current_status", a.Status).
			WithDetail("reason", "application is already "+string(a.Status))
	}
	if !newStatus.IsValid() {
		return TimelineEntry{}, ErrInvalidTransition().
			WithDetail("new_status", newStatus)
	}

	entry := TimelineEntry{
		Round:     a.NextRound(newStatus, explicitRound),
		Status:    newStatus,
		Feedback:  strings.TrimSpace(feedback),
		UpdatedBy: actor,
		UpdatedAt: now,
	}

	a.Status = newStatus
	a.CurrentRound = entry.Round
	a.Timeline = append(a.Timeline, entry)
	a.UpdatedAt = now
	return entry, nil
}

// ValidateResume checks the uploaded file's declared type and size
func ValidateResume(contentType string, size int64) error {
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return ErrUnsupportedFileType().
			WithDetail("content_type", contentType).
			WithDetail("allowed", "application/pdf")
	}
	if size > MaxResumeSize {
		return ErrFileTooLarge().
			WithDetail("file_size", size).
			WithDetail("max_size", MaxResumeSize)
	}
	if size <= 0 {
		return ErrInvalidRequest().WithDetail("resume", "file is empty")
	}
	return nil
}
