package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

// AdminService implements the audit path: unscoped reads plus destructive
// user management. Ownership filters are bypassed here; the authorization
// gate in front of these routes is the only thing standing between a
// request and every record in the system.
type AdminService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	cache StatsCache
	log   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, cache StatsCache, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, cache: cache, log: log}
}

// ListUsers returns every user. Password hashes never serialize outward.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// ListTasks returns every task with its owner summary attached.
func (s *AdminService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.FindAllWithOwners(ctx)
}

// SystemStats aggregates unscoped user and task counts.
func (s *AdminService) SystemStats(ctx context.Context) (*ports.SystemStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}

	totalTasks, err := s.tasks.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}

	completed := true
	completedTasks, err := s.tasks.Count(ctx, &completed)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}

	rate := "0%"
	if totalTasks > 0 {
		rate = fmt.Sprintf("%.2f%%", float64(completedTasks)/float64(totalTasks)*100)
	}

	return &ports.SystemStats{
		Users: ports.UserTotals{Total: totalUsers},
		Tasks: ports.TaskTotals{
			Total:          totalTasks,
			Completed:      completedTasks,
			Pending:        totalTasks - completedTasks,
			CompletionRate: rate,
		},
	}, nil
}

// DeleteUser removes a user and all their tasks. An admin cannot delete
// their own account through this path.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) (*ports.CascadeResult, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfAction
	}

	user, tasksDeleted, err := s.users.DeleteCascade(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if cerr := s.cache.Invalidate(ctx, targetID); cerr != nil {
		s.log.Warn().Err(cerr).Str("user_id", targetID).Msg("stats cache invalidation failed")
	}

	s.log.Info().
		Str("admin_id", actorID).
		Str("user_id", targetID).
		Int64("tasks_deleted", tasksDeleted).
		Msg("user deleted with owned tasks")

	return &ports.CascadeResult{User: user, TasksDeleted: tasksDeleted}, nil
}

// ChangeRole sets a user's role. An admin cannot change their own role.
func (s *AdminService) ChangeRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfAction
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.UpdateFields(ctx, targetID, ports.UserUpdate{Role: &role})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin_id", actorID).
		Str("user_id", targetID).
		Str("role", role).
		Msg("user role changed")

	return user, nil
}
