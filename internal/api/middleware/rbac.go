package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// RequireRole is the authorization gate. It must run after Auth; a missing
// principal is treated as unauthenticated rather than a server fault.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(PrincipalKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
