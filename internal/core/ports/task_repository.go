package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// TaskUpdate is the explicit allow-list of mutable task fields. Nil fields
// are left untouched; arbitrary request bodies are never persisted directly.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Completed      *bool
	Cost           *float64
	HoursEstimated *float64
	Image          *string
	FinishedAt     *time.Time
}

// TaskRepository defines persistence operations for tasks.
//
// Every read and mutation that takes an ownerID conjoins it with the id
// filter: a task that exists but belongs to someone else is reported as
// domain.ErrTaskNotFound, indistinguishable from a task that does not
// exist. An empty ownerID bypasses the scope and is reserved for the admin
// audit path.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	FindOne(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID string, fields TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) (*domain.Task, error)

	// Stats aggregates counts, sums and averages over the owner's tasks.
	Stats(ctx context.Context, ownerID string) (*domain.TaskStats, error)

	// FindAllWithOwners returns every task with its owner summary attached
	// (admin audit path).
	FindAllWithOwners(ctx context.Context) ([]*domain.Task, error)
	Count(ctx context.Context, completed *bool) (int64, error)
}
