package auth

import (
	"strings"

	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller attached to a request
type AuthContext struct {
	UserID kernel.UserID
	Role   kernel.Role
	Email  kernel.Email
}

func (a *AuthContext) IsAdmin() bool {
	return a.Role == kernel.RoleAdmin
}

func (a *AuthContext) IsStudent() bool {
	return a.Role == kernel.RoleStudent
}

// TokenMiddleware validates bearer tokens
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid bearer token
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ErrUnauthenticated()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return ErrUnauthenticated().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
		})
		return c.Next()
	}
}

// RequireRole must run after Authenticate
func (m *TokenMiddleware) RequireRole(roles ...kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthenticated()
		}
		for _, r := range roles {
			if ac.Role == r {
				return c.Next()
			}
		}
		return ErrForbidden().WithDetail("required_roles", roles)
	}
}

// GetAuthContext returns the caller set by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}
