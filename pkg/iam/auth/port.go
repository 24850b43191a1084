package auth

import (
	"context"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role kernel.Role, email kernel.Email) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies passwords
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
}

// LoginLimiter throttles login attempts. Implementations fail open.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) bool
	Reset(ctx context.Context, key string)
}

// TokenClaims is the validated content of an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Role      kernel.Role
	Email     kernel.Email
	ExpiresAt time.Time
}
