package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/pkg/token"
)

// Context keys set by Auth and OptionalAuth.
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyRole     = "role"
)

const (
	msgTokenRequired = "access token required"
	msgTokenInvalid  = "invalid or expired token"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

func bearer(header string) (raw string, present bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func setIdentity(c echo.Context, claims *token.Claims) {
	c.Set(KeyUserID, claims.ID)
	c.Set(KeyUsername, claims.Username)
	c.Set(KeyRole, claims.Role)
}

// Auth validates the bearer token and injects the identity into the context.
// A missing header and a bad token are reported with different messages.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, present := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !present {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired)
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid)
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid)
			}

			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, _ := bearer(c.Request().Header.Get(echo.HeaderAuthorization)); raw != "" {
				if claims, err := tokens.Parse(raw); err == nil {
					setIdentity(c, claims)
				}
			}
			return next(c)
		}
	}
}
