package ports

import (
	"context"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// UserUpdate is the explicit allow-list of mutable user fields. Nil fields
// are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// UserRepository defines persistence operations for users. Implementations
// enforce email uniqueness and return domain sentinel errors at the
// boundary rather than storage-engine error shapes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	UpdateFields(ctx context.Context, id string, fields UserUpdate) (*domain.User, error)
	Count(ctx context.Context) (int64, error)

	// DeleteCascade removes the user and every task it owns. The two deletes
	// run inside a multi-document transaction when the deployment supports
	// one; otherwise they run sequentially and any partial failure is
	// surfaced as an error, never as success.
	DeleteCascade(ctx context.Context, id string) (*domain.User, int64, error)
}
