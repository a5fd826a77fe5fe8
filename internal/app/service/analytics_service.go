package service

import (
	"context"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/app/analytics"
	"github.com/drashti-2005/task-manager-sub000/internal/core/authz"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

type AnalyticsService struct {
	tasks ports.TaskRepository
	teams ports.TeamRepository
	now   func() time.Time
}

func NewAnalyticsService(tasks ports.TaskRepository, teams ports.TeamRepository) *AnalyticsService {
	return &AnalyticsService{tasks: tasks, teams: teams, now: time.Now}
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)

// load applies role gating and fetches the scoped task slice the engine
// computes over. A user-role actor is always pinned to their own tasks;
// manager/admin may pass an explicit userId or none at all. A nil UserID is
// global scope, never a filter on a null assignee.
func (s *AnalyticsService) load(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) ([]domain.Task, error) {
	filter := domain.TaskFilter{}
	if !authz.Can(actor.Role, authz.CapViewAnyAnalytics) {
		self := actor.ID
		filter.AssignedTo = &self
	} else if q.UserID != nil {
		filter.AssignedTo = q.UserID
	}

	var scope domain.TaskScope
	if authz.Can(actor.Role, authz.CapViewAllTasks) {
		scope = domain.TaskScope{All: true}
	} else {
		teamIDs, err := s.teams.IDsByMember(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		scope = authz.ScopeFor(actor, teamIDs)
	}
	return s.tasks.List(ctx, scope, filter)
}

func (s *AnalyticsService) Overview(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) (*analytics.Overview, error) {
	tasks, err := s.load(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	tasks = filterByCreated(tasks, analytics.Range{Start: q.Start, End: q.End})
	out := analytics.ComputeOverview(tasks, s.now())
	return &out, nil
}

func (s *AnalyticsService) CompletionTrends(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) ([]analytics.TrendBucket, error) {
	tasks, err := s.load(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	return analytics.CompletionTrends(tasks, analytics.Range{Start: q.Start, End: q.End}, groupByOrDay(q.GroupBy)), nil
}

func (s *AnalyticsService) Productivity(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) ([]analytics.ProductivityBucket, error) {
	tasks, err := s.load(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	return analytics.Productivity(tasks, analytics.Range{Start: q.Start, End: q.End}, groupByOrDay(q.GroupBy)), nil
}

func (s *AnalyticsService) TimeAnalysis(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) (*analytics.TimeAnalysis, error) {
	tasks, err := s.load(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	out := analytics.ComputeTimeAnalysis(tasks, analytics.Range{Start: q.Start, End: q.End})
	return &out, nil
}

func (s *AnalyticsService) BestDays(ctx context.Context, actor domain.Actor, q ports.AnalyticsQuery) ([]analytics.BestDay, error) {
	tasks, err := s.load(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	return analytics.BestDays(tasks, analytics.Range{Start: q.Start, End: q.End}, q.Limit), nil
}

func groupByOrDay(g analytics.GroupBy) analytics.GroupBy {
	if g == analytics.GroupByWeek {
		return analytics.GroupByWeek
	}
	return analytics.GroupByDay
}

func filterByCreated(tasks []domain.Task, r analytics.Range) []domain.Task {
	if r.Start == nil && r.End == nil {
		return tasks
	}
	out := tasks[:0:0]
	for _, t := range tasks {
		if (r.Start == nil || !t.CreatedAt.Before(*r.Start)) && (r.End == nil || !t.CreatedAt.After(*r.End)) {
			out = append(out, t)
		}
	}
	return out
}
