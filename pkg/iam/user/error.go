package user

import (
	"net/http"

	"github.com/Abraxas-365/internhub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeUserNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailTaken           = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusBadRequest, "Email already registered")
	CodeWeakPassword         = ErrRegistry.Register("WEAK_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Password must be at least 6 characters long")
	CodeInvalidRole          = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Role must be admin or student")
	CodeMissingStudentFields = ErrRegistry.Register("MISSING_STUDENT_FIELDS", errx.TypeValidation, http.StatusBadRequest, "Department and year are required for students")
	CodeInvalidRequest       = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}

func ErrWeakPassword() *errx.Error {
	return ErrRegistry.New(CodeWeakPassword)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrMissingStudentFields() *errx.Error {
	return ErrRegistry.New(CodeMissingStudentFields)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
