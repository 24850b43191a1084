package application

import (
	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// CreateApplicationRequest carries a submitted resume
type CreateApplicationRequest struct {
	StudentID    kernel.UserID
	InternshipID kernel.InternshipID
	ResumeData   []byte
	ContentType  string
	Filename     string
}

// UpdateStatusRequest - DTO for moving one application
type UpdateStatusRequest struct {
	Status   Status `json:"status"`
	Feedback string `json:"feedback,omitempty"`
	Round    int    `json:"round,omitempty"`
}

// BulkUpdateStatusRequest - DTO for moving several students' applications to one internship
type BulkUpdateStatusRequest struct {
	StudentIDs   []kernel.UserID     `json:"student_ids"`
	InternshipID kernel.InternshipID `json:"internship_id"`
	Status       Status              `json:"status"`
	Feedback     string              `json:"feedback,omitempty"`
}

// BulkUpdateResult reports how many applications moved
type BulkUpdateResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// HasAppliedResponse answers the check endpoint
type HasAppliedResponse struct {
	HasApplied bool `json:"has_applied"`
}

// ResumeFile is a downloaded resume
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
