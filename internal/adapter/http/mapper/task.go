package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
	"time"
)

// TimestampLayout renders UTC timestamps with microseconds, e.g.
// 2026-02-13T10:20:30.000000Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func ToTaskResponse(task domain.Task) dto.TaskResponse {
	return dto.TaskResponse{Data: ToTaskItem(task)}
}

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		CreatedAt: FormatTimestamp(task.CreatedAt),
		UpdatedAt: FormatTimestamp(task.UpdatedAt),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueAt != nil {
		value := FormatTimestamp(*task.DueAt)
		item.DueAt = &value
	}

	return item
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
