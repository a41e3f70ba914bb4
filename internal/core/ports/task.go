package ports

import (
	"context"
	"time"

	"tasktracker/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, input domain.CreateTaskInput, now time.Time) (domain.Task, error)
	Get(ctx context.Context, id uint64) (domain.Task, error)
	List(ctx context.Context, page domain.PageRequest) (domain.TaskPage, error)
	Update(ctx context.Context, id uint64, input domain.UpdateTaskInput, now time.Time) (domain.Task, error)
	Delete(ctx context.Context, id uint64) error
}

type TaskService interface {
	ListTasks(ctx context.Context, page int) (domain.TaskPage, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
