package dashboardapi

import (
	"time"

	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/internhub/recruitment/dashboard"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipsrv"
	"github.com/gofiber/fiber/v2"
)

// studentRecentLimit caps the recent list on the student dashboard
const studentRecentLimit = 5

// AdminDashboard is the admin overview
type AdminDashboard struct {
	Internships  dashboard.InternshipSummary           `json:"internships"`
	Applications dashboard.StatusCounts                `json:"applications"`
	Trend        []dashboard.DailyCount                `json:"trend"`
	Recent       []*application.ApplicationWithDetails `json:"recent"`
}

// StudentDashboard is the student overview
type StudentDashboard struct {
	Applications dashboard.StatusCounts                `json:"applications"`
	Recent       []*application.ApplicationWithDetails `json:"recent"`
}

type Handlers struct {
	internships  *internshipsrv.InternshipService
	applications *applicationsrv.ApplicationService
	users        *usersrv.UserService
	loc          *time.Location
}

// NewHandlers creates dashboard handlers. Trend days are bucketed in loc.
func NewHandlers(
	internships *internshipsrv.InternshipService,
	applications *applicationsrv.ApplicationService,
	users *usersrv.UserService,
	loc *time.Location,
) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		internships:  internships,
		applications: applications,
		users:        users,
		loc:          loc,
	}
}

// Admin returns posting and application stats for the caller's internships
// GET /api/dashboard/admin?days=7
func (h *Handlers) Admin(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	summary, err := h.internships.Summary(c.Context(), ac.UserID)
	if err != nil {
		return err
	}

	apps, err := h.applications.ListForAdmin(c.Context(), ac.UserID)
	if err != nil {
		return err
	}

	recent, err := h.applications.ListRecent(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(AdminDashboard{
		Internships:  summary,
		Applications: dashboard.CountByStatus(apps),
		Trend:        dashboard.DailyTrend(apps, h.loc, c.QueryInt("days", dashboard.DefaultTrendDays)),
		Recent:       recent,
	})
}

// Student returns the caller's application stats
// GET /api/dashboard/student
func (h *Handlers) Student(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	apps, err := h.applications.ListMine(c.Context(), ac.UserID)
	if err != nil {
		return err
	}

	recent := apps
	if len(recent) > studentRecentLimit {
		recent = recent[:studentRecentLimit]
	}

	return c.JSON(StudentDashboard{
		Applications: dashboard.CountByStatus(apps),
		Recent:       recent,
	})
}

// Students lists every student with their application stats
// GET /api/admin/students
func (h *Handlers) Students(c *fiber.Ctx) error {
	students, err := h.users.ListStudents(c.Context())
	if err != nil {
		return err
	}

	apps, err := h.applications.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(dashboard.StudentStats(students, apps))
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	admin := authMiddleware.RequireRole(kernel.RoleAdmin)
	student := authMiddleware.RequireRole(kernel.RoleStudent)

	api := app.Group("/api/dashboard", authMiddleware.Authenticate())
	api.Get("/admin", admin, handlers.Admin)
	api.Get("/student", student, handlers.Student)

	app.Get("/api/admin/students", authMiddleware.Authenticate(), admin, handlers.Students)
}
