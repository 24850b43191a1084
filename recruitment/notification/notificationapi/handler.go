package notificationapi

import (
	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/Abraxas-365/internhub/recruitment/notification/notificationsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *notificationsrv.NotificationService
}

func NewHandlers(service *notificationsrv.NotificationService) *Handlers {
	return &Handlers{service: service}
}

// List returns the caller's notifications, newest first
// GET /api/notifications?unread=true&page=1&page_size=20
func (h *Handlers) List(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	page, err := h.service.List(c.Context(), ac.UserID, c.QueryBool("unread", false), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// UnreadCount returns how many notifications the caller has not read
// GET /api/notifications/unread-count
func (h *Handlers) UnreadCount(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	count, err := h.service.UnreadCount(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(notification.UnreadCountResponse{Unread: count})
}

// MarkRead marks one notification, or all of them when no id is sent
// PATCH /api/notifications/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req notification.MarkReadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return notification.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	marked, err := h.service.MarkRead(c.Context(), ac.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Notifications marked as read",
		"marked":  marked,
	})
}

// MarkOneRead is the path-parameter form of MarkRead
// PATCH /api/notifications/:id/read
func (h *Handlers) MarkOneRead(c *fiber.Ctx) error {
	ac, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	id := kernel.NewNotificationID(c.Params("id"))
	marked, err := h.service.MarkRead(c.Context(), ac.UserID, notification.MarkReadRequest{NotificationID: &id})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
		"marked":  marked,
	})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/notifications", authMiddleware.Authenticate())

	api.Get("/", handlers.List)
	api.Get("/unread-count", handlers.UnreadCount)
	api.Patch("/read", handlers.MarkRead)
	api.Patch("/:id/read", handlers.MarkOneRead)
}
