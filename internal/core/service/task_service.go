package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-manager/internal/api/metrics"
	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

// StatsCache abstracts the per-owner stats cache (Redis). Get returns
// (nil, nil) on a miss.
type StatsCache interface {
	Get(ctx context.Context, ownerID string) (*domain.TaskStats, error)
	Set(ctx context.Context, ownerID string, stats *domain.TaskStats) error
	Invalidate(ctx context.Context, ownerID string) error
}

// TaskService implements the ownership-scoped task use-cases. The owner
// filter is applied by the repository on every read and mutation; this
// layer supplies the principal's id and never lets a caller-provided owner
// through.
type TaskService struct {
	repo  ports.TaskRepository
	cache StatsCache
	log   zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, cache StatsCache, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, cache: cache, log: log}
}

// Create persists a new task stamped with the authenticated owner. The
// title is trimmed before the required check so a whitespace-only title
// never stores an untitled task.
func (s *TaskService) Create(ctx context.Context, ownerID string, in ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	task := &domain.Task{
		UserID:         ownerID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Cost:           in.Cost,
		HoursEstimated: in.HoursEstimated,
		Image:          in.Image,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	metrics.TasksCreatedTotal.Inc()
	s.log.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task created")
	return created, nil
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Get returns one task if and only if it belongs to the owner.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.FindOne(ctx, taskID, ownerID)
}

// Update applies the allow-listed fields to an owned task. The first
// transition of completed to true stamps finished_at; the stamp is
// set-once: un-completing keeps it and re-completing does not move it.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, fields ports.TaskUpdate) (*domain.Task, error) {
	fields.FinishedAt = nil // never caller-settable

	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		fields.Title = &title
	}
	if fields.Description != nil {
		description := strings.TrimSpace(*fields.Description)
		fields.Description = &description
	}

	task, err := s.repo.Update(ctx, taskID, ownerID, fields)
	if err != nil {
		return nil, err
	}

	if task.Completed && task.FinishedAt == nil {
		now := time.Now().UTC()
		task, err = s.repo.Update(ctx, taskID, ownerID, ports.TaskUpdate{FinishedAt: &now})
		if err != nil {
			return nil, err
		}
		metrics.TasksCompletedTotal.Inc()
	}

	s.invalidateStats(ctx, ownerID)
	return task, nil
}

// Delete removes an owned task and returns it.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.Delete(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	s.log.Info().Str("task_id", taskID).Str("user_id", ownerID).Msg("task deleted")
	return task, nil
}

// Stats returns the owner's aggregate, served from cache when fresh.
func (s *TaskService) Stats(ctx context.Context, ownerID string) (*domain.TaskStats, error) {
	if cached, err := s.cache.Get(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).Str("user_id", ownerID).Msg("stats cache read failed, falling back to store")
	} else if cached != nil {
		metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.StatsCacheTotal.WithLabelValues("miss").Inc()

	stats, err := s.repo.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, ownerID, stats); err != nil {
		s.log.Warn().Err(err).Str("user_id", ownerID).Msg("stats cache write failed")
	}
	return stats, nil
}

func (s *TaskService) invalidateStats(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).Str("user_id", ownerID).Msg("stats cache invalidation failed")
	}
}
