package ports

import (
	"context"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// CreateTaskInput carries the fields accepted on task creation. The owner
// is always stamped from the authenticated principal; any owner the caller
// supplies in the body is ignored before this DTO is built.
type CreateTaskInput struct {
	Title          string
	Description    string
	Cost           float64
	HoursEstimated float64
	Image          string
}

// TaskService defines the ownership-scoped task use-cases. Every operation
// is executed in the context of the requesting principal's id.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, fields TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Stats(ctx context.Context, ownerID string) (*domain.TaskStats, error)
}
