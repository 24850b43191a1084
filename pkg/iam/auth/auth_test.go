package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(mw *TokenMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})

	app.Get("/me", mw.Authenticate(), func(c *fiber.Ctx) error {
		ac, _ := GetAuthContext(c)
		return c.SendString(ac.UserID.String() + ":" + ac.Role.String())
	})
	app.Get("/admin", mw.Authenticate(), mw.RequireRole(kernel.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "test")

	token, err := svc.GenerateAccessToken("u1", kernel.RoleStudent, "s@x.io")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("u1"), claims.UserID)
	assert.Equal(t, kernel.RoleStudent, claims.Role)
	assert.Equal(t, kernel.Email("s@x.io"), claims.Email)
}

func TestJWTService_RejectsExpiredAndForeignTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "test")
	token, err := svc.GenerateAccessToken("u1", kernel.RoleAdmin, "a@x.io")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateAccessToken(token)
	assert.True(t, errx.IsCode(err, CodeInvalidToken))

	other := NewJWTService("another-secret", time.Hour, "test")
	_, err = other.ValidateAccessToken(token)
	assert.True(t, errx.IsCode(err, CodeInvalidToken))
}

func TestTokenMiddleware(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "test")
	app := testApp(NewTokenMiddleware(svc))

	studentToken, err := svc.GenerateAccessToken("s1", kernel.RoleStudent, "s@x.io")
	require.NoError(t, err)
	adminToken, err := svc.GenerateAccessToken("a1", kernel.RoleAdmin, "a@x.io")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"malformed header", "/me", "Token abc", http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer abc", http.StatusUnauthorized},
		{"valid student", "/me", "Bearer " + studentToken, http.StatusOK},
		{"student on admin route", "/admin", "Bearer " + studentToken, http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + adminToken, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
