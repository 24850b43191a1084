package internship

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{"3 months", 3, true},
		{" 12 months ", 12, true},
		{"6+ months", 6, true},
		{"months", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDuration(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var req CreateInternshipRequest
	require.NoError(t, json.Unmarshal([]byte(`{"duration":"4 months"}`), &req))
	assert.Equal(t, 4, req.Duration.Months)

	require.NoError(t, json.Unmarshal([]byte(`{"duration":2}`), &req))
	assert.Equal(t, 2, req.Duration.Months)

	assert.Error(t, json.Unmarshal([]byte(`{"duration":"flexible"}`), &req))
}

func TestIsOpen_DeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	i := &Internship{Deadline: deadline}

	assert.True(t, i.IsOpen(deadline.Add(-time.Second)))
	assert.True(t, i.IsOpen(deadline))
	assert.False(t, i.IsOpen(deadline.Add(time.Nanosecond)))

	assert.False(t, i.IsActive(deadline))
}

func TestValidate(t *testing.T) {
	i := &Internship{Title: "Go intern"}
	err := i.Validate()
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeValidationFailed))

	ok := &Internship{
		Title: "Go intern", Company: "Acme", Location: "Remote", Description: "Build things",
		Stipend: "$1,000", Deadline: time.Now(), DurationMonths: 3,
	}
	assert.NoError(t, ok.Validate())
}

func TestUpdateInternshipRequest_Apply(t *testing.T) {
	i := &Internship{Title: "Old", Requirements: []string{"a"}, DurationMonths: 3}
	title := "New"
	reqs := []string{" go ", "", "sql"}

	UpdateInternshipRequest{Title: &title, Requirements: &reqs}.Apply(i)

	assert.Equal(t, "New", i.Title)
	assert.Equal(t, []string{"go", "sql"}, i.Requirements)
	assert.Equal(t, 3, i.DurationMonths)
}
