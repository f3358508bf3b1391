package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/twittoo/twittoo-api/docs"
	"github.com/twittoo/twittoo-api/internal/infrastructure/http/handlers"
)

// OpsOptions configures the operational endpoints.
type OpsOptions struct {
	// Checks are the readiness checks keyed by dependency name.
	Checks map[string]handlers.Check
	// Gatherer feeds /metrics. Defaults to the process-wide registry.
	Gatherer prometheus.Gatherer
	// UploadDir is served under /uploads when set.
	UploadDir string
}

// RegisterOps mounts health checks, metrics, API docs and uploaded files.
// None of these routes require authentication.
func RegisterOps(e *echo.Echo, opts OpsOptions) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if opts.UploadDir != "" {
		uploads := e.Group("/uploads", noSniff)
		uploads.Static("", opts.UploadDir)
	}
}

// noSniff stops browsers from rendering uploads as anything other than the
// type they are served with.
func noSniff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderXContentTypeOptions, "nosniff")
		return next(c)
	}
}
