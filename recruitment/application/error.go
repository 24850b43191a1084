package application

import (
	"net/http"

	"github.com/Abraxas-365/internhub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeDuplicate           = ErrRegistry.Register("DUPLICATE", errx.TypeConflict, http.StatusBadRequest, "You have already applied for this internship")
	CodeDeadlinePassed      = ErrRegistry.Register("DEADLINE_PASSED", errx.TypeBusiness, http.StatusBadRequest, "Internship application deadline has passed")
	CodeUnsupportedFileType = ErrRegistry.Register("UNSUPPORTED_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Only PDF files are allowed")
	CodeFileTooLarge        = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size must be less than 5MB")
	CodeInvalidTransition   = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeForbidden           = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Not authorized to access this application")
	CodeConcurrentUpdate    = ErrRegistry.Register("CONCURRENT_UPDATE", errx.TypeConflict, http.StatusConflict, "Application was modified concurrently, retry")
	CodeResumeNotFound      = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrDuplicate() *errx.Error {
	return ErrRegistry.New(CodeDuplicate)
}

func ErrDeadlinePassed() *errx.Error {
	return ErrRegistry.New(CodeDeadlinePassed)
}

func ErrUnsupportedFileType() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFileType)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrConcurrentUpdate() *errx.Error {
	return ErrRegistry.New(CodeConcurrentUpdate)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
