package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrTitleRequired = errors.New("title is required")

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// TaskOwner is the owner summary attached to tasks on the admin audit path.
type TaskOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Task is a unit of work owned by exactly one user. It is only reachable
// through owner-filtered queries, except on the admin audit path.
type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Completed      bool       `json:"completed"`
	Cost           float64    `json:"cost"`
	HoursEstimated float64    `json:"hours_estimated"`
	FinishedAt     *time.Time `json:"finished_at"`
	Image          string     `json:"image,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Owner          *TaskOwner `json:"owner,omitempty"`
}

// TaskStats aggregates a single owner's tasks.
type TaskStats struct {
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	PendingTasks   int64   `json:"pendingTasks"`
	TotalCost      float64 `json:"totalCost"`
	TotalHours     float64 `json:"totalHours"`
	AverageCost    float64 `json:"averageCost"`
	AverageHours   float64 `json:"averageHours"`
}
