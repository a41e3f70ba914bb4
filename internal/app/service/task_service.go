package service

import (
	"context"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

type Option func(*TaskService)

// WithClock replaces the clock used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(taskRepository ports.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, page int) (domain.TaskPage, error) {
	return s.taskRepository.List(ctx, domain.NewPageRequest(page))
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.Get(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	return s.taskRepository.Create(ctx, input, s.timestamp())
}

// UpdateTask applies input to an existing task. A request without any field
// returns the task untouched.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	current, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if input.IsEmpty() {
		return current, nil
	}

	// updated_at must move forward even when the clock has not.
	now := s.timestamp()
	if !now.After(current.UpdatedAt) {
		now = current.UpdatedAt.Add(time.Microsecond)
	}

	return s.taskRepository.Update(ctx, id, input, now)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	return s.taskRepository.Delete(ctx, id)
}

// Stores keep microsecond precision.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

var _ ports.TaskService = (*TaskService)(nil)
