package internship

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// Internship is a posting owned by the admin who created it
type Internship struct {
	ID             kernel.InternshipID `json:"id"`
	Title          string              `json:"title"`
	Company        string              `json:"company"`
	Location       string              `json:"location"`
	Description    string              `json:"description"`
	Requirements   []string            `json:"requirements"`
	DurationMonths int                 `json:"duration_months"`
	Stipend        string              `json:"stipend"`
	Deadline       time.Time           `json:"deadline"`
	PostedBy       kernel.UserID       `json:"posted_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (i *Internship) IsOwnedBy(userID kernel.UserID) bool {
	return i.PostedBy == userID
}

// IsOpen reports whether applications are accepted at now. The deadline instant itself is still open.
func (i *Internship) IsOpen(now time.Time) bool {
	return !now.After(i.Deadline)
}

// IsActive is the dashboard notion of a live posting: strictly before the deadline
func (i *Internship) IsActive(now time.Time) bool {
	return i.Deadline.After(now)
}

// Validate checks required fields
func (i *Internship) Validate() error {
	missing := []string{}
	if strings.TrimSpace(i.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(i.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(i.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(i.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(i.Stipend) == "" {
		missing = append(missing, "stipend")
	}
	if i.Deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if len(missing) > 0 {
		return ErrValidationFailed().WithDetail("missing_fields", missing)
	}
	if i.DurationMonths < 0 {
		return ErrValidationFailed().WithDetail("duration", i.DurationMonths)
	}
	return nil
}

// ParseDuration reads the leading integer of values like "3", "3 months" or " 6+ months"
func ParseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// cleanRequirements trims entries and drops empty ones
func cleanRequirements(reqs []string) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
