package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const msgForbidden = "insufficient permissions"

// OwnerResolver yields the owner of the resource addressed by the request.
// found is false when the resource does not exist.
type OwnerResolver func(c echo.Context) (ownerID int64, found bool, err error)

func roleSet(roles []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return allowed
}

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := roleSet(allowedRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired)
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
			}
			return next(c)
		}
	}
}

// OwnerOrRole lets the request through when the caller's role is allowed or
// the caller owns the resource. A resource that cannot be resolved falls
// through so the handler can answer 404.
func OwnerOrRole(resolve OwnerResolver, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := roleSet(allowedRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired)
			}
			if _, ok := allowed[role]; ok {
				return next(c)
			}

			ownerID, found, err := resolve(c)
			if err != nil {
				return err
			}
			if !found {
				return next(c)
			}
			if userID, _ := c.Get(KeyUserID).(int64); userID != 0 && userID == ownerID {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
		}
	}
}
