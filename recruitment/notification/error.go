package notification

import (
	"net/http"

	"github.com/Abraxas-365/internhub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("NOTIFICATION")

var (
	CodeNotificationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeForbidden            = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Notification belongs to another user")
	CodeInvalidRequest       = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid notification request")
)

func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
