package dto

type TeamItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"createdBy"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type CreateTeamRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Members     []string `json:"members" binding:"omitempty,dive,required"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	IsActive    *bool   `json:"isActive" binding:"omitempty"`
}

type TeamMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}
