package ports

import (
	"context"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByResetToken matches the sha256 hash of an unexpired reset token.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type AuthResult struct {
	Token string
	User  *domain.User
}

// ResetInfo is the dev-mode forgot-password payload, returned only when no
// mail transport is configured.
type ResetInfo struct {
	ResetURL   string
	ResetToken string
	Mailed     bool
}

type AuthService interface {
	Register(ctx context.Context, in domain.RegisterInput, meta domain.RequestMeta) (*AuthResult, error)
	Login(ctx context.Context, in domain.LoginInput, meta domain.RequestMeta) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string, meta domain.RequestMeta) (*ResetInfo, error)
	ResetPassword(ctx context.Context, token, newPassword string, meta domain.RequestMeta) error
}

// Mailer delivers the password-reset mail. Implementations live at the
// edges; the auth service only sees this contract.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}
