package ports

import (
	"context"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// RegisterInput carries the fields accepted on registration. The role is
// always "user"; privilege is only granted later through the admin path.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries the profile fields a principal may change.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// AuthService implements credential handling and token issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
