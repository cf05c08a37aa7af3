package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/carelink/hospital-portal/docs"
	"github.com/carelink/hospital-portal/internal/api/handler"
	"github.com/carelink/hospital-portal/internal/api/middleware"
	"github.com/carelink/hospital-portal/internal/core/domain"
	"github.com/carelink/hospital-portal/internal/core/ports"
	"github.com/carelink/hospital-portal/internal/core/service"
	"github.com/carelink/hospital-portal/internal/core/token"
	mongodb "github.com/carelink/hospital-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/carelink/hospital-portal/internal/infrastructure/db/redis"
	"github.com/carelink/hospital-portal/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs that is built in main.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Codec    *token.Codec
	Sources  []ports.Source
	CacheTTL time.Duration
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	authService := service.NewAuthService(userRepo, deps.Codec)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(authService)

	specialityCache := redisdb.NewSpecialityCache(deps.Redis).WithTTL(deps.CacheTTL)
	specialityService := service.NewSpecialityService(deps.Sources, specialityCache, deps.Log)
	hospitalHandler := handler.NewHospitalHandler(specialityService)

	authed := middleware.Auth(deps.Codec)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authed)
	e.PUT("/auth/profile", authHandler.UpdateProfile, authed)
	e.POST("/auth/logout", authHandler.Logout, authed)

	// --- Role-gated routes: role is re-read from the store, not the token ---
	e.GET("/hospitals/specialities", hospitalHandler.SearchSpecialities,
		authed, middleware.RBAC(userRepo, domain.RolePatient))
	e.GET("/admin/users/:id", adminHandler.GetUser,
		authed, middleware.RBAC(userRepo, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
