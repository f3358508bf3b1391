package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/api/middleware"
)

type identity struct {
	ID       int64
	Username string
	Role     string
}

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing identity means the route was wired without Auth.
func ctxIdentity(c echo.Context) (identity, error) {
	id, _ := c.Get(middleware.KeyUserID).(int64)
	role, _ := c.Get(middleware.KeyRole).(string)
	if id == 0 || role == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}
	username, _ := c.Get(middleware.KeyUsername).(string)
	return identity{ID: id, Username: username, Role: role}, nil
}

// viewerID is the caller's id on routes with optional auth, zero when anonymous.
func viewerID(c echo.Context) int64 {
	id, _ := c.Get(middleware.KeyUserID).(int64)
	return id
}

// ParseID reads a positive integer identifier. Anything else is reported as
// not found by the callers rather than as a validation error.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
