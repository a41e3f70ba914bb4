package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const taskColumns = "id, title, description, status, due_at, created_at, updated_at"

const (
	getTaskQuery    = "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	countTasksQuery = "SELECT COUNT(*) FROM tasks"
	listTasksQuery  = "SELECT " + taskColumns + " FROM tasks ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	deleteTaskQuery = "DELETE FROM tasks WHERE id = ?"
)

// TaskRepository stores tasks through sqlx on MySQL or PostgreSQL.
type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	DueAt       sql.NullTime   `db:"due_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput, now time.Time) (domain.Task, error) {
	columns := []string{"title", "description", "due_at", "created_at", "updated_at"}
	args := []any{input.Title, input.Description, utcPtr(input.DueAt), now.UTC(), now.UTC()}
	// Without a status the column default applies.
	if input.Status != nil {
		columns = append(columns, "status")
		args = append(args, string(*input.Status))
	}

	query := fmt.Sprintf(
		"INSERT INTO tasks (%s) VALUES (%s)",
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)

	id, err := r.insert(ctx, query, args)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *TaskRepository) insert(ctx context.Context, query string, args []any) (uint64, error) {
	if r.usesReturning() {
		var id uint64
		if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PostgreSQL drivers do not implement LastInsertId.
func (r *TaskRepository) usesReturning() bool {
	return sqlx.BindType(r.db.DriverName()) == sqlx.DOLLAR
}

func (r *TaskRepository) Get(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getTaskQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) List(ctx context.Context, page domain.PageRequest) (domain.TaskPage, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, countTasksQuery); err != nil {
		return domain.TaskPage{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listTasksQuery), page.PerPage, page.Offset()); err != nil {
		return domain.TaskPage{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return domain.TaskPage{
		Items:   tasks,
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   total,
	}, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uint64, input domain.UpdateTaskInput, now time.Time) (domain.Task, error) {
	assignments := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if input.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		assignments = append(assignments, "description = ?")
		args = append(args, input.Description)
	}
	if input.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, string(*input.Status))
	}
	if input.DueAtSet {
		assignments = append(assignments, "due_at = ?")
		args = append(args, utcPtr(input.DueAt))
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(args, now.UTC(), id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(assignments, ", "))
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	return r.Get(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueAt.Valid {
		value := row.DueAt.Time.UTC()
		task.DueAt = &value
	}

	return task
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
