package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(user *domain.User) (string, error) {
	return "token-for-" + user.ID, nil
}

type stubUserRepo struct {
	users    map[string]*domain.User // keyed by id
	nextID   int
	failWith error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateFields(_ context.Context, id string, fields ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Email != nil {
		u.Email = *fields.Email
	}
	if fields.PasswordHash != nil {
		u.PasswordHash = *fields.PasswordHash
	}
	if fields.Role != nil {
		u.Role = *fields.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) DeleteCascade(_ context.Context, id string) (*domain.User, int64, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, 0, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return cloneUser(u), 0, nil
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, stubTokenIssuer{}, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_HashesSecret(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", user.Role)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatalf("expected hashed secret")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match original password: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "A@X.com", Password: "other66"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, created, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user.ID != created.ID {
		t.Fatalf("unexpected login result: %q %+v", token, user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret1"})

	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_UpdateProfile_EmailUniqueness(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, first, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret1"})
	_, second, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "b@x.com", Password: "secret1"})

	taken := "a@x.com"
	if _, err := svc.UpdateProfile(context.Background(), second.ID, ports.UpdateProfileInput{Email: &taken}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Re-submitting your own email is not a conflict.
	own := "a@x.com"
	if _, err := svc.UpdateProfile(context.Background(), first.ID, ports.UpdateProfileInput{Email: &own}); err != nil {
		t.Fatalf("own email rejected: %v", err)
	}

	free := "c@x.com"
	updated, err := svc.UpdateProfile(context.Background(), second.ID, ports.UpdateProfileInput{Email: &free})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "c@x.com" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, user, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "oldpass"})

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong current secret, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "oldpass", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "a@x.com", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
