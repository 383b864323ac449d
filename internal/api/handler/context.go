package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/api/middleware"
	"github.com/taskforge/task-manager/internal/core/domain"
)

// currentUser pulls the authenticated principal off the context. Routes
// using it must sit behind the auth gate.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.PrincipalKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}
	return user, nil
}
