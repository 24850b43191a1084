package application

import (
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func newPending() *Application {
	return New("app-1", "stu-1", "int-1", Resume{Filename: "cv.pdf", ContentType: "application/pdf", Size: 10}, t0)
}

func TestNew_SeedsTimeline(t *testing.T) {
	a := newPending()

	require.Len(t, a.Timeline, 1)
	assert.Equal(t, TimelineEntry{Round: 1, Status: StatusPending, UpdatedBy: "stu-1", UpdatedAt: t0}, a.Timeline[0])
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, 1, a.CurrentRound)
}

func TestNextRound(t *testing.T) {
	a := newPending()
	a.CurrentRound = 2

	tests := []struct {
		status   Status
		explicit int
		want     int
	}{
		{StatusScreening, 0, 3},
		{StatusInterview, 0, 3},
		{StatusAccepted, 0, 2},
		{StatusRejected, 0, 2},
		{StatusPending, 0, 2},
		{StatusInterview, 7, 7},
		{StatusAccepted, 5, 5},
		{StatusScreening, -1, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.NextRound(tt.status, tt.explicit), "%s/%d", tt.status, tt.explicit)
	}
}

func TestTransition_AppendsAndMirrorsLastEntry(t *testing.T) {
	a := newPending()

	steps := []Status{StatusScreening, StatusInterview, StatusInterview, StatusAccepted}
	for i, s := range steps {
		entry, err := a.Transition(s, "adm-1", "", 0, t0.Add(time.Duration(i+1)*time.Hour))
		require.NoError(t, err)

		last := a.Timeline[len(a.Timeline)-1]
		assert.Equal(t, entry, last)
		assert.Equal(t, last.Status, a.Status)
		assert.Equal(t, last.Round, a.CurrentRound)
		assert.Len(t, a.Timeline, i+2)
	}

	assert.Equal(t, 4, a.CurrentRound)
}

func TestTransition_TerminalIsFinal(t *testing.T) {
	for _, terminal := range []Status{StatusAccepted, StatusRejected} {
		a := newPending()
		_, err := a.Transition(terminal, "adm-1", "", 0, t0)
		require.NoError(t, err)

		for _, next := range AllStatuses {
			_, err := a.Transition(next, "adm-1", "", 0, t0)
			assert.True(t, errx.IsCode(err, CodeInvalidTransition))
		}
		assert.Len(t, a.Timeline, 2)
		assert.Equal(t, terminal, a.Status)
	}
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	a := newPending()
	_, err := a.Transition("hired", "adm-1", "", 0, t0)
	assert.True(t, errx.IsCode(err, CodeInvalidTransition))
	assert.Len(t, a.Timeline, 1)
}

func TestTransition_KeepsFeedback(t *testing.T) {
	a := newPending()
	entry, err := a.Transition(StatusRejected, "adm-1", "  not a fit  ", 0, t0)
	require.NoError(t, err)
	assert.Equal(t, "not a fit", entry.Feedback)
}

func TestValidateResume(t *testing.T) {
	assert.True(t, errx.IsCode(ValidateResume("image/png", 100), CodeUnsupportedFileType))
	assert.True(t, errx.IsCode(ValidateResume("application/pdf", 6<<20), CodeFileTooLarge))
	assert.NoError(t, ValidateResume("application/pdf", 4<<20))
	assert.NoError(t, ValidateResume("Application/PDF", MaxResumeSize))
	assert.NoError(t, ValidateResume("application/x-pdf", 1))
	assert.True(t, errx.IsCode(ValidateResume("application/pdf", 0), CodeInvalidRequest))
}

func TestStatusChangeMessage(t *testing.T) {
	title, msg := StatusChangeMessage(StatusScreening, "Go Intern", "")
	assert.Equal(t, "Application Screening", title)
	assert.Equal(t, `Your application for "Go Intern" has moved to screening round`, msg)

	title, msg = StatusChangeMessage(StatusAccepted, "Go Intern", "Welcome aboard")
	assert.Equal(t, "Application Accepted", title)
	assert.Equal(t, `Your application for "Go Intern" has been accepted. Feedback: Welcome aboard`, msg)

	_, msg = StatusChangeMessage(StatusPending, "Go Intern", "")
	assert.Equal(t, `Your application for "Go Intern" has been pending`, msg)
}

func TestNewApplicationMessage(t *testing.T) {
	title, msg := NewApplicationMessage("Go Intern")
	assert.Equal(t, "New Application", title)
	assert.Equal(t, `A new application has been submitted for "Go Intern"`, msg)
}
