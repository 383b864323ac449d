package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/auth"
	"github.com/taskforge/task-manager/internal/core/domain"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) Verify(string) (*auth.Claims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	user *domain.User
	err  error
}

func (s *stubResolver) FindByID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func invokeAuth(t *testing.T, header string, tokens TokenVerifier, users SubjectResolver) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(tokens, users)(next)(c)
	return c, err
}

func TestAuth_NoHeader(t *testing.T) {
	_, err := invokeAuth(t, "", &stubVerifier{}, &stubResolver{})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "no token provided" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		_, err := invokeAuth(t, header, &stubVerifier{}, &stubResolver{})

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := &stubVerifier{err: auth.ErrTokenExpired}

	_, err := invokeAuth(t, "Bearer stale", tokens, &stubResolver{})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "token expired, please log in again" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := &stubVerifier{err: auth.ErrTokenMalformed}

	_, err := invokeAuth(t, "Bearer garbage", tokens, &stubResolver{})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_UnknownSubject(t *testing.T) {
	tokens := &stubVerifier{claims: &auth.Claims{UserID: "gone"}}
	users := &stubResolver{err: domain.ErrUserNotFound}

	_, err := invokeAuth(t, "Bearer ok", tokens, users)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_StoreFault(t *testing.T) {
	tokens := &stubVerifier{claims: &auth.Claims{UserID: "user_1"}}
	users := &stubResolver{err: errors.New("connection reset")}

	_, err := invokeAuth(t, "Bearer ok", tokens, users)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestAuth_AttachesPrincipal(t *testing.T) {
	user := &domain.User{ID: "user_1", Email: "alice@example.com", Role: domain.RoleUser}
	tokens := &stubVerifier{claims: &auth.Claims{UserID: "user_1"}}
	users := &stubResolver{user: user}

	c, err := invokeAuth(t, "bearer ok", tokens, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := c.Get(PrincipalKey).(*domain.User)
	if !ok || got.ID != "user_1" {
		t.Fatalf("principal not attached, got %#v", c.Get(PrincipalKey))
	}
}
