package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bankline/auth-service/internal/api/handler"
	"github.com/bankline/auth-service/internal/api/middleware"
	"github.com/bankline/auth-service/internal/core/service"
	"github.com/bankline/auth-service/internal/infrastructure/config"
	"github.com/bankline/auth-service/internal/infrastructure/db/postgres"
	redisdb "github.com/bankline/auth-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	authService := service.NewAuthService(userRepo, userCache, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	authGuard := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authGuard)

	// --- User routes ---
	e.GET("/auth/users", userHandler.List, authGuard)
	e.GET("/auth/users/:id", userHandler.GetByID, authGuard)
	// Deletion is the registration-saga rollback hook. It carries no guard on
	// purpose; expose it only on an internal network path.
	e.DELETE("/auth/users/:id", userHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
