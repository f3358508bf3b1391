package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const limiterIdle = 5 * time.Minute

// RateLimit applies a per-IP token bucket refilled at perMinute requests per
// minute, with a burst of half that. onReject, when set, is called for every
// rejected request.
func RateLimit(perMinute int, onReject func(c echo.Context)) echo.MiddlewareFunc {
	perMinute = max(perMinute, 1)

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     max(perMinute/2, 1),
		ExpiresIn: limiterIdle,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if onReject != nil {
				onReject(c)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
