package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

type AuthService struct {
	users     ports.UserRepository
	recorder  *audit.Recorder
	mailer    ports.Mailer // nil means no transport configured (dev mode)
	jwtSecret []byte
	jwtExpiry time.Duration
	clientURL string
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	recorder *audit.Recorder,
	mailer ports.Mailer,
	jwtSecret string,
	jwtExpiry time.Duration,
	clientURL string,
) *AuthService {
	return &AuthService{
		users:     users,
		recorder:  recorder,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		clientURL: clientURL,
		now:       time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput, meta domain.RequestMeta) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || !emailPattern.MatchString(email) || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		IsActive:      true,
		AccountStatus: domain.AccountActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionUserRegistered,
		PerformedBy: user.ID,
		EntityType:  "user",
		EntityID:    user.ID,
		Meta:        meta,
	})
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, in domain.LoginInput, meta domain.RequestMeta) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()

	// The lockout check comes before the password compare: a correct
	// password does not unlock a locked account.
	if user.Locked(now) {
		_ = s.recorder.Record(ctx, audit.Entry{
			Action:       domain.ActionLoginFailed,
			PerformedBy:  user.ID,
			Status:       domain.ActivityFailed,
			ErrorMessage: "login attempt on locked account",
			Meta:         meta,
		})
		return nil, domain.ErrAccountLocked
	}

	if !user.CanLogin() {
		_ = s.recorder.Record(ctx, audit.Entry{
			Action:       domain.ActionLoginFailed,
			PerformedBy:  user.ID,
			Status:       domain.ActivityFailed,
			ErrorMessage: "login attempt on inactive account",
			Meta:         meta,
		})
		return nil, domain.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		user.FailedLoginAttempts++
		message := "invalid password"
		if user.FailedLoginAttempts >= domain.MaxFailedLogins {
			until := now.Add(domain.LockoutDuration)
			user.LockoutUntil = &until
			// Distinct message so operators can tell a brute-force lockout
			// from a one-off typo.
			message = fmt.Sprintf("account locked after %d failed attempts", user.FailedLoginAttempts)
		}
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			zap.L().Error("failed to persist login failure counter", zap.String("user_id", user.ID), zap.Error(err))
		}
		_ = s.recorder.Record(ctx, audit.Entry{
			Action:       domain.ActionLoginFailed,
			PerformedBy:  user.ID,
			Status:       domain.ActivityFailed,
			ErrorMessage: message,
			Meta:         meta,
		})
		if user.LockoutUntil != nil {
			return nil, domain.ErrAccountLocked
		}
		return nil, domain.ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionLogin,
		PerformedBy: user.ID,
		Meta:        meta,
	})
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string, meta domain.RequestMeta) (*ports.ResetInfo, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	hash := hashResetToken(token)

	now := s.now()
	expiry := now.Add(domain.ResetTokenTTL)
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpire = &expiry
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.clientURL, "/"), token)

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionPasswordResetAsked,
		PerformedBy: user.ID,
		EntityType:  "user",
		EntityID:    user.ID,
		Meta:        meta,
	})

	if s.mailer == nil {
		// Dev mode: no transport configured, hand the link back directly.
		return &ports.ResetInfo{ResetURL: resetURL, ResetToken: token}, nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// Roll back the token so the user is not left holding an
		// undeliverable reset link.
		user.ResetPasswordToken = nil
		user.ResetPasswordExpire = nil
		if clearErr := s.users.Update(ctx, user); clearErr != nil {
			zap.L().Error("failed to clear reset token after send failure",
				zap.String("user_id", user.ID), zap.Error(clearErr))
		}
		zap.L().Error("password reset mail failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, domain.ErrResetMailFailed
	}
	return &ports.ResetInfo{Mailed: true}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string, meta domain.RequestMeta) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}

	now := s.now()
	user, err := s.users.GetByResetToken(ctx, hashResetToken(token), now)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpire = nil
	user.LastPasswordChange = &now
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		Action:      domain.ActionPasswordReset,
		PerformedBy: user.ID,
		EntityType:  "user",
		EntityID:    user.ID,
		Meta:        meta,
	})
	return nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.jwtExpiry).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
