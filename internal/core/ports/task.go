package ports

import (
	"context"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/app/analytics"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, scope domain.TaskScope, filter domain.TaskFilter) ([]domain.Task, error)
	// Update persists the whole task in a single statement, so status and
	// completedAt can never be observed out of step. Last write wins.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// Cascade helpers for user/team deletion.
	DeleteByAssignee(ctx context.Context, userID string) (int64, error)
	ReassignAssignee(ctx context.Context, fromUserID, toUserID string) (int64, error)
	ClearTeamAssignment(ctx context.Context, teamID string) error
}

type TaskService interface {
	List(ctx context.Context, actor domain.Actor, filter domain.TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Task, error)
	Create(ctx context.Context, actor domain.Actor, in domain.CreateTaskInput, meta domain.RequestMeta) (*domain.Task, error)
	Update(ctx context.Context, actor domain.Actor, id string, in domain.UpdateTaskInput, meta domain.RequestMeta) (*domain.Task, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.TaskStatus, meta domain.RequestMeta) (*domain.Task, error)
	Delete(ctx context.Context, actor domain.Actor, id string, meta domain.RequestMeta) error
}

// AnalyticsQuery carries the caller-facing knobs. A nil UserID means global
// scope, which is not the same thing as filtering on a null assignee.
type AnalyticsQuery struct {
	UserID  *string
	Start   *time.Time
	End     *time.Time
	GroupBy analytics.GroupBy
	Limit   int
}

type AnalyticsService interface {
	Overview(ctx context.Context, actor domain.Actor, q AnalyticsQuery) (*analytics.Overview, error)
	CompletionTrends(ctx context.Context, actor domain.Actor, q AnalyticsQuery) ([]analytics.TrendBucket, error)
	Productivity(ctx context.Context, actor domain.Actor, q AnalyticsQuery) ([]analytics.ProductivityBucket, error)
	TimeAnalysis(ctx context.Context, actor domain.Actor, q AnalyticsQuery) (*analytics.TimeAnalysis, error)
	BestDays(ctx context.Context, actor domain.Actor, q AnalyticsQuery) ([]analytics.BestDay, error)
}
