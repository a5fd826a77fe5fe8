package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

// In-memory fakes for the repository ports. The service tests exercise real
// business logic against these instead of a database.

type userStoreFake struct {
	users map[string]*domain.User
}

func newUserStoreFake(users ...*domain.User) *userStoreFake {
	s := &userStoreFake{users: map[string]*domain.User{}}
	for _, u := range users {
		copied := *u
		s.users[u.ID] = &copied
	}
	return s
}

func (s *userStoreFake) Create(_ context.Context, user *domain.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *userStoreFake) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *userStoreFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *userStoreFake) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	for _, u := range s.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *userStoreFake) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *userStoreFake) List(_ context.Context, _ domain.UserFilter) ([]domain.User, int, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (s *userStoreFake) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *userStoreFake) Count(_ context.Context) (int, error) {
	return len(s.users), nil
}

type taskStoreFake struct {
	tasks map[string]*domain.Task
}

func newTaskStoreFake(tasks ...*domain.Task) *taskStoreFake {
	s := &taskStoreFake{tasks: map[string]*domain.Task{}}
	for _, t := range tasks {
		copied := *t
		s.tasks[t.ID] = &copied
	}
	return s
}

func (s *taskStoreFake) Create(_ context.Context, task *domain.Task) error {
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *taskStoreFake) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := s.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (s *taskStoreFake) List(_ context.Context, scope domain.TaskScope, filter domain.TaskFilter) ([]domain.Task, error) {
	inScope := func(t *domain.Task) bool {
		if scope.All {
			return true
		}
		if t.Assignment.UserID == scope.UserID {
			return true
		}
		if t.CreatedBy == scope.UserID && t.Assignment.Type == domain.AssignmentSelf {
			return true
		}
		for _, id := range scope.TeamIDs {
			if t.Assignment.Type == domain.AssignmentTeam && t.Assignment.TeamID == id {
				return true
			}
		}
		return false
	}

	var out []domain.Task
	for _, t := range s.tasks {
		if !inScope(t) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && t.Assignment.UserID != *filter.AssignedTo {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *taskStoreFake) Update(_ context.Context, task *domain.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *taskStoreFake) Delete(_ context.Context, id string) error {
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *taskStoreFake) Count(_ context.Context) (int, error) {
	return len(s.tasks), nil
}

func (s *taskStoreFake) DeleteByAssignee(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range s.tasks {
		if t.Assignment.UserID == userID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

func (s *taskStoreFake) ReassignAssignee(_ context.Context, fromUserID, toUserID string) (int64, error) {
	var n int64
	for _, t := range s.tasks {
		if t.Assignment.UserID == fromUserID {
			t.Assignment.UserID = toUserID
			t.Assignment.Type = domain.AssignmentIndividual
			n++
		}
	}
	return n, nil
}

func (s *taskStoreFake) ClearTeamAssignment(_ context.Context, teamID string) error {
	for _, t := range s.tasks {
		if t.Assignment.Type == domain.AssignmentTeam && t.Assignment.TeamID == teamID {
			t.Assignment = domain.IndividualAssignment(t.CreatedBy)
		}
	}
	return nil
}

type teamStoreFake struct {
	teams map[string]*domain.Team
}

func newTeamStoreFake(teams ...*domain.Team) *teamStoreFake {
	s := &teamStoreFake{teams: map[string]*domain.Team{}}
	for _, t := range teams {
		copied := *t
		copied.MemberIDs = append([]string(nil), t.MemberIDs...)
		s.teams[t.ID] = &copied
	}
	return s
}

func (s *teamStoreFake) Create(_ context.Context, team *domain.Team) error {
	copied := *team
	copied.MemberIDs = append([]string(nil), team.MemberIDs...)
	s.teams[team.ID] = &copied
	return nil
}

func (s *teamStoreFake) GetByID(_ context.Context, id string) (*domain.Team, error) {
	if t, ok := s.teams[id]; ok {
		copied := *t
		copied.MemberIDs = append([]string(nil), t.MemberIDs...)
		return &copied, nil
	}
	return nil, domain.ErrTeamNotFound
}

func (s *teamStoreFake) GetByName(_ context.Context, name string) (*domain.Team, error) {
	for _, t := range s.teams {
		if t.Name == name {
			copied := *t
			return &copied, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (s *teamStoreFake) List(_ context.Context) ([]domain.Team, error) {
	out := make([]domain.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *teamStoreFake) Update(_ context.Context, team *domain.Team) error {
	if _, ok := s.teams[team.ID]; !ok {
		return domain.ErrTeamNotFound
	}
	copied := *team
	copied.MemberIDs = append([]string(nil), team.MemberIDs...)
	s.teams[team.ID] = &copied
	return nil
}

func (s *teamStoreFake) Delete(_ context.Context, id string) error {
	if _, ok := s.teams[id]; !ok {
		return domain.ErrTeamNotFound
	}
	delete(s.teams, id)
	return nil
}

func (s *teamStoreFake) Count(_ context.Context) (int, error) {
	return len(s.teams), nil
}

func (s *teamStoreFake) IDsByMember(_ context.Context, userID string) ([]string, error) {
	var out []string
	for _, t := range s.teams {
		if t.IsActive && t.HasMember(userID) {
			out = append(out, t.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *teamStoreFake) AddMember(_ context.Context, teamID, userID string) error {
	t, ok := s.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if !t.HasMember(userID) {
		t.MemberIDs = append(t.MemberIDs, userID)
	}
	return nil
}

func (s *teamStoreFake) RemoveMember(_ context.Context, teamID, userID string) error {
	t, ok := s.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	for i, id := range t.MemberIDs {
		if id == userID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (s *teamStoreFake) RemoveMemberFromAll(_ context.Context, userID string) error {
	for id := range s.teams {
		_ = s.RemoveMember(context.Background(), id, userID)
	}
	return nil
}

// activityLogStub records entries in memory and can be told to fail, for
// exercising the recorder's best-effort contract.
type activityLogStub struct {
	entries    []domain.ActivityLog
	failInsert bool
}

func (s *activityLogStub) Insert(_ context.Context, entry *domain.ActivityLog) error {
	if s.failInsert {
		return errors.New("activity store unavailable")
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *activityLogStub) List(_ context.Context, _ domain.ActivityFilter) ([]domain.ActivityLog, int, error) {
	return s.entries, len(s.entries), nil
}

func (s *activityLogStub) lastAction() domain.Action {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1].Action
}

func newTestRecorder() (*audit.Recorder, *activityLogStub) {
	stub := &activityLogStub{}
	return audit.NewRecorder(stub, nil), stub
}
