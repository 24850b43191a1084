package internship

import (
	"net/http"

	"github.com/Abraxas-365/internhub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("INTERNSHIP")

// Error codes
var (
	CodeInternshipNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Internship not found")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Only the admin who posted this internship can change it")
	CodeHasApplications    = ErrRegistry.Register("HAS_APPLICATIONS", errx.TypeBusiness, http.StatusConflict, "Cannot delete internship with applications")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid internship request")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Internship validation failed")
)

func ErrInternshipNotFound() *errx.Error {
	return ErrRegistry.New(CodeInternshipNotFound)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrHasApplications() *errx.Error {
	return ErrRegistry.New(CodeHasApplications)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}
