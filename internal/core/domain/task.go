package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// DefaultTaskStatus is stored when a task is created without a status.
const DefaultTaskStatus = TaskStatusTodo

// TaskStatusValues returns every status in declaration order.
func TaskStatusValues() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus matches value exactly against the known statuses.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(value)
	if !status.IsValid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

type Task struct {
	ID          uint64
	Title       string
	Description *string
	Status      TaskStatus
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description *string
	// Nil leaves the choice to the store default.
	Status *TaskStatus
	DueAt  *time.Time
}

// UpdateTaskInput carries only the fields present in the request. The *Set
// flags distinguish an explicit null from an omitted nullable field.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	DueAt          *time.Time
	DueAtSet       bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && !in.DescriptionSet && in.Status == nil && !in.DueAtSet
}

// Apply returns a copy of task with the input fields applied.
func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.DueAtSet {
		task.DueAt = in.DueAt
	}
	return task
}
