package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/api/metrics"
	"github.com/taskforge/task-manager/internal/auth"
	"github.com/taskforge/task-manager/internal/core/domain"
)

// PrincipalKey is the echo context key under which the resolved principal
// is stored.
const PrincipalKey = "principal"

// TokenVerifier abstracts the token service.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// SubjectResolver resolves a verified subject id to a live user record.
type SubjectResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth is the authentication gate. Per request it extracts the bearer
// token, verifies it, resolves the subject against the store, and attaches
// the principal to the context. Every rejection is a 401 except store
// faults, which are a 500 so auth ambiguity never leaks.
func Auth(tokens TokenVerifier, users SubjectResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("token_expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired, please log in again")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("store_error").Inc()
				return echo.NewHTTPError(http.StatusInternalServerError, "authentication check failed")
			}

			c.Set(PrincipalKey, user)
			return next(c)
		}
	}
}
