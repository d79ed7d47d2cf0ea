package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openlearn/course-platform/internal/api/handler"
	"github.com/openlearn/course-platform/internal/api/middleware"
	"github.com/openlearn/course-platform/internal/core/service"
	"github.com/openlearn/course-platform/internal/infrastructure/db/postgres"
	redisdb "github.com/openlearn/course-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sqlx.DB, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("courseplatform"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)
	revocationList := redisdb.NewTokenRevocationList(rdb)

	authService := service.NewAuthService(userRepo, revocationList, jwtSecret, log)
	userService := service.NewUserService(userRepo, log)
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, courseRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, enrollmentService)
	courseHandler := handler.NewCourseHandler(courseService, enrollmentService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	accessHandler := handler.NewAccessHandler(enrollmentService)

	authRequired := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Users ---
	e.GET("/v1/users", userHandler.List, authRequired)
	e.GET("/v1/users/:id", userHandler.Get)
	e.PUT("/v1/users/:id", userHandler.Update, authRequired)
	e.DELETE("/v1/users/:id", userHandler.Delete, authRequired)
	e.GET("/v1/users/:id/enrollments", userHandler.ListEnrollments)

	// --- Courses ---
	e.GET("/v1/courses", courseHandler.List)
	e.POST("/v1/courses", courseHandler.Create, authRequired)
	e.GET("/v1/courses/count", courseHandler.Count)
	e.GET("/v1/courses/:id", courseHandler.Get)
	e.PUT("/v1/courses/:id", courseHandler.Update, authRequired)
	e.DELETE("/v1/courses/:id", courseHandler.Delete, authRequired)
	e.GET("/v1/courses/:id/stats", courseHandler.Stats)
	e.GET("/v1/courses/:id/enrollments", courseHandler.ListEnrollments)

	// --- Enrollments ---
	e.GET("/v1/enrollments", enrollmentHandler.List, authRequired)
	e.GET("/v1/enrollments/:id", enrollmentHandler.Get, authRequired)
	e.POST("/v1/enrollments", enrollmentHandler.Enroll, authRequired)
	e.DELETE("/v1/enrollments", enrollmentHandler.Unenroll, authRequired)
	e.PATCH("/v1/enrollments/:id/role", enrollmentHandler.UpdateRole, authRequired)

	// --- UI gate hints ---
	e.GET("/v1/me/access", accessHandler.Me, authRequired)

	// --- Health probes + metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
