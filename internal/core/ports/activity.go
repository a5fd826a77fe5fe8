package ports

import (
	"context"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

// ActivityLogRepository is append-only: there is no update or delete.
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, int, error)
}

type DashboardStats struct {
	TotalUsers     int
	TotalTeams     int
	TotalTasks     int
	TasksByStatus  map[domain.TaskStatus]int
	RecentActivity []domain.ActivityLog
}

type AdminService interface {
	ListUsers(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]domain.User, int, error)
	GetUser(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, id string, in domain.UpdateUserInput, meta domain.RequestMeta) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, id string, meta domain.RequestMeta) error
	// ListTasks ignores the actor's own visibility scope and lists across
	// all users and teams.
	ListTasks(ctx context.Context, actor domain.Actor, filter domain.TaskFilter) ([]domain.Task, error)
	ListActivity(ctx context.Context, actor domain.Actor, filter domain.ActivityFilter) ([]domain.ActivityLog, int, error)
	Stats(ctx context.Context, actor domain.Actor) (*DashboardStats, error)
}
