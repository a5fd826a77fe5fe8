package dto

import "github.com/drashti-2005/task-manager-sub000/internal/core/domain"

type ActivityItem struct {
	ID           string                        `json:"id"`
	Action       string                        `json:"action"`
	PerformedBy  string                        `json:"performedBy"`
	EntityType   *string                       `json:"entityType,omitempty"`
	EntityID     *string                       `json:"entityId,omitempty"`
	Changes      map[string]domain.FieldChange `json:"changes,omitempty"`
	IPAddress    string                        `json:"ipAddress,omitempty"`
	UserAgent    string                        `json:"userAgent,omitempty"`
	Status       string                        `json:"status"`
	ErrorMessage *string                       `json:"errorMessage,omitempty"`
	CreatedAt    string                        `json:"createdAt"`
}

type ActivityListResponse struct {
	Success bool           `json:"success"`
	Total   int            `json:"total"`
	Logs    []ActivityItem `json:"logs"`
}

type DashboardStatsResponse struct {
	Success        bool           `json:"success"`
	TotalUsers     int            `json:"totalUsers"`
	TotalTeams     int            `json:"totalTeams"`
	TotalTasks     int            `json:"totalTasks"`
	TasksByStatus  map[string]int `json:"tasksByStatus"`
	RecentActivity []ActivityItem `json:"recentActivity"`
}
