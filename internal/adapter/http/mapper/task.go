package mapper

import (
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for i := range tasks {
		items = append(items, ToTaskItem(&tasks[i]))
	}
	return items
}

func ToTaskItem(task *domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		AssignmentType: string(task.Assignment.Type),
		CreatedBy:      task.CreatedBy,
		Tags:           task.Tags,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}
	if task.StartDate != nil {
		value := task.StartDate.Format(time.RFC3339)
		item.StartDate = &value
	}
	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}
	if task.Assignment.UserID != "" {
		value := task.Assignment.UserID
		item.AssignedTo = &value
	}
	if task.Assignment.TeamID != "" {
		value := task.Assignment.TeamID
		item.AssignedToTeam = &value
	}
	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}
	return item
}
