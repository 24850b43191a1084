package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/internal/pdf"
	"github.com/Abraxas-365/internhub/pkg/database"
	"github.com/Abraxas-365/internhub/pkg/fsx"
	"github.com/Abraxas-365/internhub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/internhub/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/internhub/pkg/iam/user/userapi"
	"github.com/Abraxas-365/internhub/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/internhub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationapi"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/internhub/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/internhub/recruitment/dashboard/dashboardapi"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipapi"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipinfra"
	"github.com/Abraxas-365/internhub/recruitment/internship/internshipsrv"
	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/Abraxas-365/internhub/recruitment/notification/notificationapi"
	"github.com/Abraxas-365/internhub/recruitment/notification/notificationinfra"
	"github.com/Abraxas-365/internhub/recruitment/notification/notificationsrv"
	"github.com/Abraxas-365/internhub/recruitment/notification/worker"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config is read from the environment, after an optional .env file
type Config struct {
	Port     string
	LogLevel string
	LogJSON  bool

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr string
	RedisPass string

	StorageDriver string // "s3" or "local"
	StorageDir    string
	AWSRegion     string
	AWSBucket     string

	JWTSecret     string
	DisplayTZ     string
	OutboxWorkers int
	MaxPDFPages   int
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logx.Warnf("Failed to load .env file: %v", err)
	}

	return Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "internhub"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASS"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		StorageDir:    getEnv("STORAGE_DIR", "./data/uploads"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		AWSBucket:     os.Getenv("AWS_BUCKET"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		DisplayTZ:     getEnv("DISPLAY_TZ", "UTC"),
		OutboxWorkers: getEnvInt("OUTBOX_WORKERS", 2),
		MaxPDFPages:   getEnvInt("MAX_RESUME_PAGES", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// Container holds all application dependencies
type Container struct {
	Config     Config
	AuthConfig auth.Config
	Location   *time.Location

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Outbox     notification.Outbox

	// Services
	TokenService        auth.TokenService
	UserService         *usersrv.UserService
	InternshipService   *internshipsrv.InternshipService
	ApplicationService  *applicationsrv.ApplicationService
	NotificationService *notificationsrv.NotificationService
	OutboxWorker        *worker.OutboxWorker

	// API Handlers
	UserHandlers         *userapi.Handlers
	InternshipHandlers   *internshipapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	NotificationHandlers *notificationapi.Handlers
	DashboardHandlers    *dashboardapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Database Connection
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.CreateSchema(ctx, db); err != nil {
		logx.Fatalf("Failed to create schema: %v", err)
	}

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis, outbox and login limits degrade: %v", err)
	}
	c.Outbox = notificationinfra.NewRedisOutbox(c.Redis, notificationinfra.DefaultOutboxKey)

	// 3. Resume Storage
	switch cfg.StorageDriver {
	case "s3":
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.AWSBucket, "uploads")
	default:
		local, err := fsxlocal.NewLocalFileSystem(cfg.StorageDir)
		if err != nil {
			logx.Fatalf("Failed to prepare local storage: %v", err)
		}
		c.FileSystem = local
	}

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = cfg.JWTSecret
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}

	// 5. Display timezone for dashboard trends
	loc, err := time.LoadLocation(cfg.DisplayTZ)
	if err != nil {
		logx.Warnf("Unknown DISPLAY_TZ %q, using UTC", cfg.DisplayTZ)
		loc = time.UTC
	}
	c.Location = loc
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	internshipRepo := internshipinfra.NewPostgresInternshipRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	notificationRepo := notificationinfra.NewPostgresNotificationRepository(c.DB)

	// --- Infrastructure Services ---
	passwordSvc := authinfra.NewBcryptPasswordService()
	loginLimiter := authinfra.NewRedisLoginLimiter(
		c.Redis,
		c.AuthConfig.RateLimit.LoginAttempts,
		c.AuthConfig.RateLimit.Window,
	)
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(userRepo, passwordSvc, c.TokenService, loginLimiter, c.AuthConfig.JWT.AccessTokenTTL)
	c.InternshipService = internshipsrv.NewInternshipService(internshipRepo)
	c.NotificationService = notificationsrv.NewNotificationService(notificationRepo, c.Outbox)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		internshipRepo,
		c.NotificationService,
		c.FileSystem,
		pdf.NewInspector(c.Config.MaxPDFPages),
	)
	c.OutboxWorker = worker.NewOutboxWorker(c.NotificationService, c.Outbox, c.Config.OutboxWorkers)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.InternshipHandlers = internshipapi.NewHandlers(c.InternshipService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService)
	c.DashboardHandlers = dashboardapi.NewHandlers(c.InternshipService, c.ApplicationService, c.UserService, c.Location)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

// Close releases the database and Redis connections
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
