package mapper

import (
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

func ToTeamItems(teams []domain.Team) []dto.TeamItem {
	items := make([]dto.TeamItem, 0, len(teams))
	for i := range teams {
		items = append(items, ToTeamItem(&teams[i]))
	}
	return items
}

func ToTeamItem(team *domain.Team) dto.TeamItem {
	members := team.MemberIDs
	if members == nil {
		members = []string{}
	}
	item := dto.TeamItem{
		ID:        team.ID,
		Name:      team.Name,
		Members:   members,
		CreatedBy: team.CreatedBy,
		IsActive:  team.IsActive,
		CreatedAt: team.CreatedAt.Format(time.RFC3339),
		UpdatedAt: team.UpdatedAt.Format(time.RFC3339),
	}
	if team.Description != nil {
		value := *team.Description
		item.Description = &value
	}
	return item
}
