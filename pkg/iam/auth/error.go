package auth

import (
	"net/http"

	"github.com/Abraxas-365/internhub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthenticated    = ErrRegistry.Register("UNAUTHENTICATED", errx.TypeAuthentication, http.StatusUnauthorized, "Authentication required")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeTooManyAttempts    = ErrRegistry.Register("TOO_MANY_ATTEMPTS", errx.TypeRateLimit, http.StatusTooManyRequests, "Too many login attempts, try again later")
)

func ErrUnauthenticated() *errx.Error {
	return ErrRegistry.New(CodeUnauthenticated)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrTooManyAttempts() *errx.Error {
	return ErrRegistry.New(CodeTooManyAttempts)
}
