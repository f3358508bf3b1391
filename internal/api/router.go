package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/twittoo/twittoo-api/internal/api/handler"
	"github.com/twittoo/twittoo-api/internal/api/metrics"
	"github.com/twittoo/twittoo-api/internal/api/middleware"
	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
	infrahttp "github.com/twittoo/twittoo-api/internal/infrastructure/http"
	"github.com/twittoo/twittoo-api/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Logger       zerolog.Logger
	Tokens       middleware.TokenParser
	AuthService  ports.AuthService
	TweetService ports.TweetService
	UserService  ports.UserService

	// Checks are the readiness checks of the configured backends.
	Checks map[string]handlers.Check
	// RateLimitPerMinute throttles /api/auth per client IP. Zero disables it.
	RateLimitPerMinute int
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	UploadDir      string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// HTTP metrics live in a per-instance registry so several routers can
	// coexist in one process; /metrics serves it next to the default one.
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return xid.New().String() },
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowedOrigins(deps.AllowedOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "twittoo",
		Registerer: httpMetrics,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	tweetHandler := handler.NewTweetHandler(deps.TweetService)
	userHandler := handler.NewUserHandler(deps.UserService)

	requireAuth := middleware.Auth(deps.Tokens)
	optionalAuth := middleware.OptionalAuth(deps.Tokens)
	anyRole := middleware.RBAC(domain.RoleUser, domain.RoleEditor, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	ownerOrStaff := middleware.OwnerOrRole(tweetHandler.Owner, domain.RoleEditor, domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	if deps.RateLimitPerMinute > 0 {
		auth.Use(middleware.RateLimit(deps.RateLimitPerMinute, func(echo.Context) {
			metrics.RateLimitedTotal.Inc()
		}))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Tweet routes ---
	tweets := api.Group("/tweets")
	tweets.GET("", tweetHandler.List, optionalAuth)
	tweets.POST("", tweetHandler.Create, requireAuth, anyRole)
	tweets.GET("/:id", tweetHandler.Get, optionalAuth)
	tweets.PUT("/:id", tweetHandler.Update, requireAuth, ownerOrStaff)
	tweets.DELETE("/:id", tweetHandler.Delete, requireAuth, ownerOrStaff)
	tweets.POST("/:id/like", tweetHandler.Like, requireAuth)
	tweets.POST("/:id/retweet", tweetHandler.Retweet, requireAuth)
	tweets.POST("/:id/reply", tweetHandler.Reply, requireAuth)

	// --- User routes ---
	users := api.Group("/users")
	users.GET("/profile/:username", userHandler.Profile, optionalAuth)
	users.PUT("/me/profile", userHandler.UpdateProfile, requireAuth)
	users.GET("", userHandler.List, requireAuth, adminOnly)
	users.GET("/:id", userHandler.Get, requireAuth, adminOnly)
	users.PUT("/:id/role", userHandler.UpdateRole, requireAuth, adminOnly)
	users.DELETE("/:id", userHandler.Delete, requireAuth, adminOnly)
	users.POST("/:id/follow", userHandler.Follow, requireAuth)

	// --- Health checks, metrics, docs, uploads (no auth required) ---
	infrahttp.RegisterOps(e, infrahttp.OpsOptions{
		Checks:    deps.Checks,
		Gatherer:  prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
		UploadDir: deps.UploadDir,
	})

	return e
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
