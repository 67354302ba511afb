package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/api/handler"
	"github.com/99minutos/job-marketplace/internal/api/middleware"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

const maxBodySize = "64K"

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc ports.MarketplaceService, log zerolog.Logger, checks ...handler.DependencyCheck) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.BodyLimit(maxBodySize))

	// --- Health probes and metrics (no session) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- API ---
	authHandler := handler.NewAuthHandler(svc)
	jobHandler := handler.NewJobHandler(svc)
	appHandler := handler.NewApplicationHandler(svc)

	v1 := e.Group("/v1", middleware.Session(svc))

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/me", authHandler.Me)

	v1.GET("/jobs", jobHandler.List)
	v1.POST("/jobs", jobHandler.Create)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.DELETE("/jobs/:id", jobHandler.Delete)
	v1.GET("/me/jobs", jobHandler.ListMine)

	v1.POST("/jobs/:id/applications", appHandler.Apply)
	v1.GET("/jobs/:id/applications", appHandler.ListForJob)
	v1.GET("/me/applications", appHandler.ListMine)

	return e
}
