package internshipapi

import (
	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/dashboard"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for internship operations
type Handlers struct {
	service *internshipsrv.InternshipService
}

func NewHandlers(service *internshipsrv.InternshipService) *Handlers {
	return &Handlers{service: service}
}

// CreateInternship posts a new internship
// POST /api/internships
func (h *Handlers) CreateInternship(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req internship.CreateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return internship.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateInternship(c.Context(), ac.UserID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetInternship retrieves one internship
// GET /api/internships/:id
func (h *Handlers) GetInternship(c *fiber.Ctx) error {
	i, err := h.service.GetInternship(c.Context(), kernel.NewInternshipID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(i)
}

// ListInternships returns every internship, newest first
// GET /api/internships
func (h *Handlers) ListInternships(c *fiber.Ctx) error {
	list, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// SearchInternships filters, sorts and pages the listing
// GET /api/internships/search?search=&location=&duration=1-3&sort_by=deadline&page=1&page_size=20
func (h *Handlers) SearchInternships(c *fiber.Ctx) error {
	var filters dashboard.Filters
	if err := c.QueryParser(&filters); err != nil {
		return internship.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	page, err := h.service.SearchInternships(c.Context(), filters, parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ListMine returns the caller's postings
// GET /api/internships/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	list, err := h.service.ListMine(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// UpdateInternship edits a posting
// PUT /api/internships/:id
func (h *Handlers) UpdateInternship(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req internship.UpdateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return internship.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateInternship(c.Context(), kernel.NewInternshipID(c.Params("id")), ac.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteInternship removes a posting without applications
// DELETE /api/internships/:id
func (h *Handlers) DeleteInternship(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	if err := h.service.DeleteInternship(c.Context(), kernel.NewInternshipID(c.Params("id")), ac.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Internship deleted successfully"})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}
}

// RegisterRoutes registers internship routes. Reads are public.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/internships")

	admin := []fiber.Handler{authMiddleware.Authenticate(), authMiddleware.RequireRole(kernel.RoleAdmin)}

	api.Get("/", handlers.ListInternships)
	api.Get("/search", handlers.SearchInternships)
	api.Get("/mine", append(admin, handlers.ListMine)...)
	api.Get("/:id", handlers.GetInternship)

	api.Post("/", append(admin, handlers.CreateInternship)...)
	api.Put("/:id", append(admin, handlers.UpdateInternship)...)
	api.Delete("/:id", append(admin, handlers.DeleteInternship)...)
}
