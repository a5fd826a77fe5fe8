package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	"github.com/drashti-2005/task-manager-sub000/internal/core/authz"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

// UserDeletePolicy decides what happens to a deleted user's assigned tasks.
type UserDeletePolicy string

const (
	// DeletePolicyCascade removes the user's assigned tasks with them.
	DeletePolicyCascade UserDeletePolicy = "delete"
	// DeletePolicyReassign moves them to the acting admin.
	DeletePolicyReassign UserDeletePolicy = "reassign"
)

type AdminService struct {
	users        ports.UserRepository
	tasks        ports.TaskRepository
	teams        ports.TeamRepository
	logs         ports.ActivityLogRepository
	recorder     *audit.Recorder
	deletePolicy UserDeletePolicy
	now          func() time.Time
}

func NewAdminService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	teams ports.TeamRepository,
	logs ports.ActivityLogRepository,
	recorder *audit.Recorder,
	deletePolicy UserDeletePolicy,
) *AdminService {
	if deletePolicy != DeletePolicyReassign {
		deletePolicy = DeletePolicyCascade
	}
	return &AdminService{
		users:        users,
		tasks:        tasks,
		teams:        teams,
		logs:         logs,
		recorder:     recorder,
		deletePolicy: deletePolicy,
		now:          time.Now,
	}
}

var _ ports.AdminService = (*AdminService)(nil)

func (s *AdminService) ListUsers(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]domain.User, int, error) {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return nil, 0, domain.ErrRoleForbidden
	}
	return s.users.List(ctx, filter)
}

func (s *AdminService) GetUser(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return nil, domain.ErrRoleForbidden
	}
	return s.users.GetByID(ctx, id)
}

func (s *AdminService) UpdateUser(ctx context.Context, actor domain.Actor, id string, in domain.UpdateUserInput, meta domain.RequestMeta) (*domain.User, error) {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return nil, domain.ErrRoleForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]domain.FieldChange{}
	roleChanged := false
	if in.Name != nil && *in.Name != user.Name {
		changes["name"] = domain.FieldChange{Before: user.Name, After: *in.Name}
		user.Name = *in.Name
	}
	if in.Role != nil && *in.Role != user.Role {
		if !in.Role.Valid() {
			return nil, domain.ErrRoleForbidden
		}
		changes["role"] = domain.FieldChange{Before: string(user.Role), After: string(*in.Role)}
		user.Role = *in.Role
		roleChanged = true
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		changes["isActive"] = domain.FieldChange{Before: user.IsActive, After: *in.IsActive}
		user.IsActive = *in.IsActive
	}
	if in.AccountStatus != nil && *in.AccountStatus != user.AccountStatus {
		changes["accountStatus"] = domain.FieldChange{Before: string(user.AccountStatus), After: string(*in.AccountStatus)}
		user.AccountStatus = *in.AccountStatus
	}

	if len(changes) == 0 {
		return user, nil
	}

	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	action := domain.ActionUserUpdated
	if roleChanged {
		action = domain.ActionUserRoleChanged
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      action,
		PerformedBy: actor.ID,
		EntityType:  "user",
		EntityID:    user.ID,
		Changes:     changes,
		Meta:        meta,
	})
	return user, nil
}

// DeleteUser removes the account and makes sure no task keeps pointing at
// it: assigned tasks are deleted or reassigned per the configured policy,
// and team memberships are dropped.
func (s *AdminService) DeleteUser(ctx context.Context, actor domain.Actor, id string, meta domain.RequestMeta) error {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return domain.ErrRoleForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var affected int64
	switch s.deletePolicy {
	case DeletePolicyReassign:
		affected, err = s.tasks.ReassignAssignee(ctx, user.ID, actor.ID)
	default:
		affected, err = s.tasks.DeleteByAssignee(ctx, user.ID)
	}
	if err != nil {
		return err
	}
	if err := s.teams.RemoveMemberFromAll(ctx, user.ID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	zap.L().Info("user deleted",
		zap.String("user_id", user.ID),
		zap.String("policy", string(s.deletePolicy)),
		zap.Int64("tasks_affected", affected))

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionUserDeleted,
		PerformedBy: actor.ID,
		EntityType:  "user",
		EntityID:    user.ID,
		Changes: map[string]domain.FieldChange{
			"assignedTasks": {Before: affected, After: 0},
		},
		Meta: meta,
	})
	return nil
}

func (s *AdminService) ListTasks(ctx context.Context, actor domain.Actor, filter domain.TaskFilter) ([]domain.Task, error) {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return nil, domain.ErrRoleForbidden
	}
	return s.tasks.List(ctx, domain.TaskScope{All: true}, filter)
}

func (s *AdminService) ListActivity(ctx context.Context, actor domain.Actor, filter domain.ActivityFilter) ([]domain.ActivityLog, int, error) {
	if !authz.Can(actor.Role, authz.CapViewActivityLogs) {
		return nil, 0, domain.ErrRoleForbidden
	}
	return s.logs.List(ctx, filter)
}

func (s *AdminService) Stats(ctx context.Context, actor domain.Actor) (*ports.DashboardStats, error) {
	if !authz.Can(actor.Role, authz.CapManageUsers) {
		return nil, domain.ErrRoleForbidden
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	teamCount, err := s.teams.Count(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, domain.TaskScope{All: true}, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}
	byStatus := map[domain.TaskStatus]int{}
	for i := range tasks {
		byStatus[tasks[i].Status]++
	}

	recent, _, err := s.logs.List(ctx, domain.ActivityFilter{Limit: 10})
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		TotalUsers:     userCount,
		TotalTeams:     teamCount,
		TotalTasks:     len(tasks),
		TasksByStatus:  byStatus,
		RecentActivity: recent,
	}, nil
}
