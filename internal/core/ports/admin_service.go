package ports

import (
	"context"

	"github.com/taskforge/task-manager/internal/core/domain"
)

// UserTotals is the user section of the system stats.
type UserTotals struct {
	Total int64 `json:"total"`
}

// TaskTotals is the task section of the system stats.
type TaskTotals struct {
	Total          int64  `json:"total"`
	Completed      int64  `json:"completed"`
	Pending        int64  `json:"pending"`
	CompletionRate string `json:"completionRate"`
}

// SystemStats is the unscoped aggregate returned on the admin audit path.
type SystemStats struct {
	Users UserTotals `json:"users"`
	Tasks TaskTotals `json:"tasks"`
}

// CascadeResult reports a completed cascade delete.
type CascadeResult struct {
	User         *domain.User
	TasksDeleted int64
}

// AdminService defines the audit-path use-cases. Callers are expected to be
// admins; the transport layer enforces that via the authorization gate.
// actorID is the admin performing the operation, used for self-protection.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	SystemStats(ctx context.Context) (*SystemStats, error)
	DeleteUser(ctx context.Context, actorID, targetID string) (*CascadeResult, error)
	ChangeRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error)
}
