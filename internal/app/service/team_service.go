package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	"github.com/drashti-2005/task-manager-sub000/internal/core/authz"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

type TeamService struct {
	teams    ports.TeamRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
	recorder *audit.Recorder
	now      func() time.Time
}

func NewTeamService(teams ports.TeamRepository, tasks ports.TaskRepository, users ports.UserRepository, recorder *audit.Recorder) *TeamService {
	return &TeamService{teams: teams, tasks: tasks, users: users, recorder: recorder, now: time.Now}
}

var _ ports.TeamService = (*TeamService)(nil)

func (s *TeamService) List(ctx context.Context, actor domain.Actor) ([]domain.Team, error) {
	return s.teams.List(ctx)
}

func (s *TeamService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *TeamService) Create(ctx context.Context, actor domain.Actor, in domain.CreateTeamInput, meta domain.RequestMeta) (*domain.Team, error) {
	if !authz.Can(actor.Role, authz.CapManageTeams) {
		return nil, domain.ErrRoleForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrTeamNameTaken
	}
	if existing, err := s.teams.GetByName(ctx, name); err == nil && existing != nil {
		return nil, domain.ErrTeamNameTaken
	}

	for _, memberID := range in.MemberIDs {
		if _, err := s.users.GetByID(ctx, memberID); err != nil {
			return nil, domain.ErrUserNotFound
		}
	}

	now := s.now()
	team := &domain.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		MemberIDs:   in.MemberIDs,
		CreatedBy:   actor.ID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionTeamCreated,
		PerformedBy: actor.ID,
		EntityType:  "team",
		EntityID:    team.ID,
		Meta:        meta,
	})
	return team, nil
}

func (s *TeamService) Update(ctx context.Context, actor domain.Actor, id string, in domain.UpdateTeamInput, meta domain.RequestMeta) (*domain.Team, error) {
	if !authz.Can(actor.Role, authz.CapManageTeams) {
		return nil, domain.ErrRoleForbidden
	}
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]domain.FieldChange{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != "" && name != team.Name {
			if existing, err := s.teams.GetByName(ctx, name); err == nil && existing != nil && existing.ID != team.ID {
				return nil, domain.ErrTeamNameTaken
			}
			changes["name"] = domain.FieldChange{Before: team.Name, After: name}
			team.Name = name
		}
	}
	if in.DescriptionSet {
		changes["description"] = domain.FieldChange{Before: deref(team.Description), After: deref(in.Description)}
		team.Description = in.Description
	}
	if in.IsActive != nil && *in.IsActive != team.IsActive {
		changes["isActive"] = domain.FieldChange{Before: team.IsActive, After: *in.IsActive}
		team.IsActive = *in.IsActive
	}

	if len(changes) == 0 {
		return team, nil
	}

	team.UpdatedAt = s.now()
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionTeamUpdated,
		PerformedBy: actor.ID,
		EntityType:  "team",
		EntityID:    team.ID,
		Changes:     changes,
		Meta:        meta,
	})
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, actor domain.Actor, id string, meta domain.RequestMeta) error {
	if !authz.Can(actor.Role, authz.CapManageTeams) {
		return domain.ErrRoleForbidden
	}
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Tasks assigned to the team would otherwise dangle.
	if err := s.tasks.ClearTeamAssignment(ctx, team.ID); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, team.ID); err != nil {
		return err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionTeamDeleted,
		PerformedBy: actor.ID,
		EntityType:  "team",
		EntityID:    team.ID,
		Meta:        meta,
	})
	return nil
}

func (s *TeamService) AddMember(ctx context.Context, actor domain.Actor, teamID, userID string, meta domain.RequestMeta) (*domain.Team, error) {
	if !authz.Can(actor.Role, authz.CapManageTeams) {
		return nil, domain.ErrRoleForbidden
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	if team.HasMember(userID) {
		return team, nil
	}
	if err := s.teams.AddMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	team.MemberIDs = append(team.MemberIDs, userID)

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionTeamMemberAdded,
		PerformedBy: actor.ID,
		EntityType:  "team",
		EntityID:    teamID,
		Changes:     map[string]domain.FieldChange{"members": {Before: nil, After: userID}},
		Meta:        meta,
	})
	return team, nil
}

func (s *TeamService) RemoveMember(ctx context.Context, actor domain.Actor, teamID, userID string, meta domain.RequestMeta) (*domain.Team, error) {
	if !authz.Can(actor.Role, authz.CapManageTeams) {
		return nil, domain.ErrRoleForbidden
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(userID) {
		return team, nil
	}
	if err := s.teams.RemoveMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	members := team.MemberIDs[:0:0]
	for _, id := range team.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	team.MemberIDs = members

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionTeamMemberRemoved,
		PerformedBy: actor.ID,
		EntityType:  "team",
		EntityID:    teamID,
		Changes:     map[string]domain.FieldChange{"members": {Before: userID, After: nil}},
		Meta:        meta,
	})
	return team, nil
}
