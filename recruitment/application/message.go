package application

import (
	"fmt"
	"strings"
)

// StatusChangeMessage is the notification sent to a student after a transition
func StatusChangeMessage(status Status, internshipTitle, feedback string) (title, message string) {
	title = "Application " + capitalize(string(status))

	if status.AdvancesRound() {
		message = fmt.Sprintf(`Your application for "%s" has moved to %s round`, internshipTitle, status)
	} else {
		message = fmt.Sprintf(`Your application for "%s" has been %s`, internshipTitle, status)
	}

	if feedback = strings.TrimSpace(feedback); feedback != "" {
		message += ". Feedback: " + feedback
	}
	return title, message
}

// NewApplicationMessage is the notification sent to the posting admin
func NewApplicationMessage(internshipTitle string) (title, message string) {
	return "New Application", fmt.Sprintf(`A new application has been submitted for "%s"`, internshipTitle)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
