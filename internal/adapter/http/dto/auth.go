package dto

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=128"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserItem `json:"user"`
}

// ForgotPasswordResponse carries the dev-mode reset link when no mail
// transport is configured; otherwise only the message is set.
type ForgotPasswordResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetURL   string `json:"resetUrl,omitempty"`
	ResetToken string `json:"resetToken,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
