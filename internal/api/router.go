package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/task-manager/internal/api/handler"
	"github.com/taskforge/task-manager/internal/api/middleware"
	"github.com/taskforge/task-manager/internal/auth"
	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
	"github.com/taskforge/task-manager/internal/core/service"
	"github.com/taskforge/task-manager/internal/infrastructure/config"
	mongorepo "github.com/taskforge/task-manager/internal/infrastructure/db/mongo"
	redisrepo "github.com/taskforge/task-manager/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images ports.ImageStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Debug)
	e.Validator = handler.NewRequestValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	statsCache := redisrepo.NewStatsCache(rdb, cfg.Redis.StatsTTL)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokenService, cfg.BcryptCost, log)
	taskService := service.NewTaskService(taskRepo, statsCache, log)
	adminService := service.NewAdminService(userRepo, taskRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(adminService)
	uploadHandler := handler.NewUploadHandler(images, cfg.Cloudinary.Folder)

	authenticated := middleware.Auth(tokenService, userRepo)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, authenticated)
	authGroup.PUT("/profile", authHandler.UpdateProfile, authenticated)
	authGroup.PUT("/change-password", authHandler.ChangePassword, authenticated)

	// --- Task routes (ownership-scoped) ---
	tasks := e.Group("/tasks", authenticated)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Admin audit routes ---
	admin := e.Group("/admin", authenticated, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/tasks", adminHandler.ListTasks)
	admin.GET("/stats", adminHandler.SystemStats)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/users/:id/role", adminHandler.ChangeRole)

	// --- Uploads ---
	e.POST("/upload", uploadHandler.Upload, authenticated)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
