package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type taskModel struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	Status      string  `gorm:"size:20;not null;default:todo"`
	DueAt       *time.Time
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (taskModel) TableName() string {
	return "tasks"
}

// GormTaskRepository stores tasks through gorm. It backs the embedded SQLite
// deployment and the end-to-end tests.
type GormTaskRepository struct {
	db *gorm.DB
}

var _ ports.TaskRepository = (*GormTaskRepository)(nil)

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, input domain.CreateTaskInput, now time.Time) (domain.Task, error) {
	model := taskModel{
		Title:       input.Title,
		Description: input.Description,
		DueAt:       utcPtr(input.DueAt),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	// A zero status lets gorm fall back to the column default.
	if input.Status != nil {
		model.Status = string(*input.Status)
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return r.Get(ctx, model.ID)
}

func (r *GormTaskRepository) Get(ctx context.Context, id uint64) (domain.Task, error) {
	var model taskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return model.toDomain(), nil
}

func (r *GormTaskRepository) List(ctx context.Context, page domain.PageRequest) (domain.TaskPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&taskModel{}).Count(&total).Error; err != nil {
		return domain.TaskPage{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	var models []taskModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return domain.TaskPage{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(models))
	for _, model := range models {
		tasks = append(tasks, model.toDomain())
	}

	return domain.TaskPage{
		Items:   tasks,
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   int(total),
	}, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, id uint64, input domain.UpdateTaskInput, now time.Time) (domain.Task, error) {
	// A map keeps explicit nulls, which struct updates would skip.
	changes := map[string]any{"updated_at": now.UTC()}
	if input.Title != nil {
		changes["title"] = *input.Title
	}
	if input.DescriptionSet {
		changes["description"] = input.Description
	}
	if input.Status != nil {
		changes["status"] = string(*input.Status)
	}
	if input.DueAtSet {
		changes["due_at"] = utcPtr(input.DueAt)
	}

	result := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", id).Updates(changes)
	if err := result.Error; err != nil {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return r.Get(ctx, id)
}

func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (m taskModel) toDomain() domain.Task {
	task := domain.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.TaskStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.DueAt != nil {
		value := m.DueAt.UTC()
		task.DueAt = &value
	}
	return task
}
