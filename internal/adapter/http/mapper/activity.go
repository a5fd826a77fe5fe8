package mapper

import (
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

func ToActivityItems(entries []domain.ActivityLog) []dto.ActivityItem {
	items := make([]dto.ActivityItem, 0, len(entries))
	for i := range entries {
		items = append(items, ToActivityItem(&entries[i]))
	}
	return items
}

func ToActivityItem(entry *domain.ActivityLog) dto.ActivityItem {
	return dto.ActivityItem{
		ID:           entry.ID,
		Action:       string(entry.Action),
		PerformedBy:  entry.PerformedBy,
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		Changes:      entry.Changes,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		Status:       string(entry.Status),
		ErrorMessage: entry.ErrorMessage,
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
	}
}
