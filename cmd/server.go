package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/internhub/internal/metrics"
	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/iam/user/userapi"
	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationapi"
	"github.com/Abraxas-365/internhub/recruitment/dashboard/dashboardapi"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipapi"
	"github.com/Abraxas-365/internhub/recruitment/notification/notificationapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// bodyLimit leaves room above the resume limit so oversized files reach validation
const bodyLimit = 10 << 20

func main() {
	// 1. Configuration and Logger
	cfg := loadConfig()
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.SetJSON(cfg.LogJSON)
	logx.Info("Starting InternHub API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "InternHub API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             bodyLimit,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metrics.Middleware())

	// 5. Health Check and Metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		dbOK := container.DB.PingContext(ctx) == nil
		redisOK := container.Redis.Ping(ctx).Err() == nil

		status := "ok"
		if !dbOK {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"db":     dbOK,
			"redis":  redisOK,
		})
	})
	app.Get("/metrics", metrics.FiberHandler())

	// 6. Register Routes

	// Accounts: /api/auth
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)

	// Internships: /api/internships
	internshipapi.RegisterRoutes(app, container.InternshipHandlers, container.AuthMiddleware)

	// Applications: /api/applications, /api/admin/students/:id/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// Notifications: /api/notifications
	notificationapi.RegisterRoutes(app, container.NotificationHandlers, container.AuthMiddleware)

	// Dashboards: /api/dashboard, /api/admin/students
	dashboardapi.RegisterRoutes(app, container.DashboardHandlers, container.AuthMiddleware)

	// 7. Background Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.OutboxWorker.Start(workerCtx)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	stopWorkers()
	container.OutboxWorker.Wait()

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors, e.g. route not found or body too large
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.IsInternal() {
			logx.WithFields(logx.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"code":   e.Code,
			}).Errorf("Internal Server Error: %v", e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
