package dto

// UserItem never carries the password hash or reset-token material.
type UserItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	IsActive      bool    `json:"isActive"`
	AccountStatus string  `json:"accountStatus"`
	LastLogin     *string `json:"lastLogin,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type UpdateUserRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	Role          *string `json:"role" binding:"omitempty,oneof=user manager admin"`
	IsActive      *bool   `json:"isActive" binding:"omitempty"`
	AccountStatus *string `json:"accountStatus" binding:"omitempty,oneof=active suspended inactive"`
}

type UserListResponse struct {
	Success bool       `json:"success"`
	Total   int        `json:"total"`
	Users   []UserItem `json:"users"`
}
