package applicationapi

import (
	"io"
	"strconv"

	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new instance of application handlers
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateApplication submits a resume to an internship
// POST /api/applications (multipart: internship_id, resume)
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	internshipID := kernel.NewInternshipID(c.FormValue("internship_id"))
	if internshipID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("field", "internship_id")
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("file_error", err.Error())
	}

	contentType := file.Header.Get(fiber.HeaderContentType)

	fileContent, err := file.Open()
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("file_open_error", err.Error())
	}
	defer fileContent.Close()

	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return application.ErrInvalidRequest().WithDetail("file_read_error", err.Error())
	}

	app, err := h.service.CreateApplication(c.Context(), application.CreateApplicationRequest{
		StudentID:    ac.UserID,
		InternshipID: internshipID,
		ResumeData:   fileData,
		ContentType:  contentType,
		Filename:     file.Filename,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GetApplication returns one application
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	app, err := h.service.GetApplication(c.Context(), kernel.NewApplicationID(c.Params("id")), ac.UserID, ac.Role)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// ListAll returns every application
// GET /api/applications
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	apps, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListMine returns the caller's applications
// GET /api/applications/student
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	apps, err := h.service.ListMine(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListForAdmin returns applications to the caller's internships
// GET /api/applications/admin
func (h *Handlers) ListForAdmin(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	apps, err := h.service.ListForAdmin(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListRecent returns the latest applications
// GET /api/applications/recent
func (h *Handlers) ListRecent(c *fiber.Ctx) error {
	apps, err := h.service.ListRecent(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListForInternship returns applications to one internship
// GET /api/applications/internship/:internshipId
func (h *Handlers) ListForInternship(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	apps, err := h.service.ListForInternship(c.Context(), kernel.NewInternshipID(c.Params("internshipId")), ac.UserID, ac.Role)
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListByStudent returns one student's applications
// GET /api/admin/students/:id/applications
func (h *Handlers) ListByStudent(c *fiber.Ctx) error {
	apps, err := h.service.ListByStudent(c.Context(), kernel.NewUserID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// CheckApplied tells a student whether they already applied
// GET /api/applications/check/:internshipId
func (h *Handlers) CheckApplied(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	applied, err := h.service.HasApplied(c.Context(), ac.UserID, kernel.NewInternshipID(c.Params("internshipId")))
	if err != nil {
		return err
	}
	return c.JSON(application.HasAppliedResponse{HasApplied: applied})
}

// UpdateStatus moves an application to a new status
// PATCH /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.UpdateStatus(c.Context(), kernel.NewApplicationID(c.Params("id")), ac.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Application status updated",
		"application": app,
	})
}

// BulkUpdateStatus moves several students' applications at once
// PATCH /api/applications/bulk-status
func (h *Handlers) BulkUpdateStatus(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req application.BulkUpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.BulkUpdateStatus(c.Context(), ac.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Applications updated",
		"modified": result.Updated,
		"result":   result,
	})
}

// DownloadResume streams the stored resume
// GET /api/applications/:id/resume
func (h *Handlers) DownloadResume(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	file, err := h.service.DownloadResume(c.Context(), kernel.NewApplicationID(c.Params("id")), ac.UserID, ac.Role)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(file.Filename))
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// RegisterRoutes registers all application routes. Static segments are
// registered before /:id so they are not captured as ids.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	admin := authMiddleware.RequireRole(kernel.RoleAdmin)
	student := authMiddleware.RequireRole(kernel.RoleStudent)

	api.Post("/", student, handlers.CreateApplication)
	api.Post("/create", student, handlers.CreateApplication)
	api.Get("/", admin, handlers.ListAll)

	api.Get("/student", student, handlers.ListMine)
	api.Get("/admin", admin, handlers.ListForAdmin)
	api.Get("/recent", admin, handlers.ListRecent)
	api.Get("/check/:internshipId", student, handlers.CheckApplied)
	api.Get("/internship/:internshipId", handlers.ListForInternship)
	api.Patch("/bulk-status", admin, handlers.BulkUpdateStatus)

	api.Get("/:id", handlers.GetApplication)
	api.Get("/:id/resume", handlers.DownloadResume)
	api.Patch("/:id/status", admin, handlers.UpdateStatus)

	app.Get("/api/admin/students/:id/applications", authMiddleware.Authenticate(), admin, handlers.ListByStudent)
}
