package internship

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Duration accepts either a JSON number or a string such as "3 months"
type Duration struct {
	Months int
	Set    bool
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		d.Months, d.Set = n, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a number or string")
	}
	months, ok := ParseDuration(s)
	if !ok {
		return fmt.Errorf("duration %q has no leading number of months", s)
	}
	d.Months, d.Set = months, true
	return nil
}

// CreateInternshipRequest - DTO for posting an internship
type CreateInternshipRequest struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Duration     Duration  `json:"duration"`
	Stipend      string    `json:"stipend"`
	Deadline     time.Time `json:"deadline"`
}

// ToEntity builds an unsaved internship
func (r CreateInternshipRequest) ToEntity() *Internship {
	return &Internship{
		Title:          strings.TrimSpace(r.Title),
		Company:        strings.TrimSpace(r.Company),
		Location:       strings.TrimSpace(r.Location),
		Description:    strings.TrimSpace(r.Description),
		Requirements:   cleanRequirements(r.Requirements),
		DurationMonths: r.Duration.Months,
		Stipend:        strings.TrimSpace(r.Stipend),
		Deadline:       r.Deadline,
	}
}

// UpdateInternshipRequest - DTO for editing; nil fields are left unchanged
type UpdateInternshipRequest struct {
	Title        *string    `json:"title,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Requirements *[]string  `json:"requirements,omitempty"`
	Duration     Duration   `json:"duration"`
	Stipend      *string    `json:"stipend,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// Apply copies the set fields onto i
func (r UpdateInternshipRequest) Apply(i *Internship) {
	if r.Title != nil {
		i.Title = strings.TrimSpace(*r.Title)
	}
	if r.Company != nil {
		i.Company = strings.TrimSpace(*r.Company)
	}
	if r.Location != nil {
		i.Location = strings.TrimSpace(*r.Location)
	}
	if r.Description != nil {
		i.Description = strings.TrimSpace(*r.Description)
	}
	if r.Requirements != nil {
		i.Requirements = cleanRequirements(*r.Requirements)
	}
	if r.Duration.Set {
		i.DurationMonths = r.Duration.Months
	}
	if r.Stipend != nil {
		i.Stipend = strings.TrimSpace(*r.Stipend)
	}
	if r.Deadline != nil {
		i.Deadline = *r.Deadline
	}
}
