package userapi

import (
	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/iam/user"
	"github.com/Abraxas-365/internhub/pkg/iam/user/usersrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for accounts and profiles
type Handlers struct {
	service *usersrv.UserService
}

func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{service: service}
}

// Register creates an account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    u,
	})
}

// Login issues an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the caller's profile
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	u, err := h.service.GetProfile(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// UpdateMe edits the caller's profile
// PUT /api/auth/me
func (h *Handlers) UpdateMe(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.UpdateProfile(c.Context(), ac.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// RegisterRoutes registers account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/me", authMiddleware.Authenticate(), handlers.Me)
	api.Put("/me", authMiddleware.Authenticate(), handlers.UpdateMe)
}
