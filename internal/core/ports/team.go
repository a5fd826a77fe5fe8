package ports

import (
	"context"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	GetByName(ctx context.Context, name string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// IDsByMember returns the active teams the user belongs to.
	IDsByMember(ctx context.Context, userID string) ([]string, error)
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	RemoveMemberFromAll(ctx context.Context, userID string) error
}

type TeamService interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Team, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Team, error)
	Create(ctx context.Context, actor domain.Actor, in domain.CreateTeamInput, meta domain.RequestMeta) (*domain.Team, error)
	Update(ctx context.Context, actor domain.Actor, id string, in domain.UpdateTeamInput, meta domain.RequestMeta) (*domain.Team, error)
	Delete(ctx context.Context, actor domain.Actor, id string, meta domain.RequestMeta) error
	AddMember(ctx context.Context, actor domain.Actor, teamID, userID string, meta domain.RequestMeta) (*domain.Team, error)
	RemoveMember(ctx context.Context, actor domain.Actor, teamID, userID string, meta domain.RequestMeta) (*domain.Team, error)
}
