package mapper

import (
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for i := range users {
		items = append(items, ToUserItem(&users[i]))
	}
	return items
}

func ToUserItem(user *domain.User) dto.UserItem {
	item := dto.UserItem{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		IsActive:      user.IsActive,
		AccountStatus: string(user.AccountStatus),
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     user.UpdatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		value := user.LastLogin.Format(time.RFC3339)
		item.LastLogin = &value
	}
	return item
}
