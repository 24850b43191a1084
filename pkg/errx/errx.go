package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error independently of the domain that raised it
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeBusiness       Type = "BUSINESS"
	TypeRateLimit      Type = "RATE_LIMIT"
	TypeExternal       Type = "EXTERNAL"
	TypeInternal       Type = "INTERNAL"
)

// HTTPStatus returns the default HTTP status for an error type
func (t Type) HTTPStatus() int {
	switch t {
	case TypeValidation, TypeBusiness:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeRateLimit:
		return http.StatusTooManyRequests
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error returned across service boundaries
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value pair that is rendered for client-facing errors
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// IsInternal reports whether the error must be hidden from clients
func (e *Error) IsInternal() bool {
	return e.Type == TypeInternal || e.Type == TypeExternal
}

// ToHTTPResponse renders the error body. Internal errors never leak message or details.
func (e *Error) ToHTTPResponse() map[string]any {
	if e.IsInternal() {
		return map[string]any{
			"error":   "Internal Server Error",
			"type":    string(TypeInternal),
			"code":    "INTERNAL_ERROR",
			"message": "An unexpected error occurred",
		}
	}

	resp := map[string]any{
		"error":   e.Message,
		"type":    string(e.Type),
		"code":    string(e.Code),
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// New creates an ad-hoc error outside of a registry
func New(message string, t Type) *Error {
	return &Error{
		Code:       Code(t),
		Type:       t,
		Message:    message,
		HTTPStatus: t.HTTPStatus(),
	}
}

// Wrap annotates err with a message and type. Errors that already carry a
// client-facing errx type are returned untouched so their code survives.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) && !existing.IsInternal() {
		return existing
	}

	return &Error{
		Code:       Code(t),
		Type:       t,
		Message:    message,
		HTTPStatus: t.HTTPStatus(),
		Cause:      err,
	}
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
