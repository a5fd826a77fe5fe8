package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

func seedDBUser(t *testing.T, repo *UserRepository, user domain.User) domain.User {
	t.Helper()
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.AccountStatus == "" {
		user.AccountStatus = domain.AccountActive
		user.IsActive = true
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	}
	user.UpdatedAt = user.CreatedAt
	require.NoError(t, repo.Create(context.Background(), &user))
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedDBUser(t, repo, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})

	byID, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)
	require.True(t, byID.IsActive)

	byEmail, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdatePersistsLockoutState(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := seedDBUser(t, repo, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})

	until := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	user.FailedLoginAttempts = 5
	user.LockoutUntil = &until
	require.NoError(t, repo.Update(context.Background(), &user))

	got, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 5, got.FailedLoginAttempts)
	require.NotNil(t, got.LockoutUntil)
	require.WithinDuration(t, until, *got.LockoutUntil, time.Second)

	ghost := domain.User{ID: "ghost", Email: "g@example.com"}
	require.ErrorIs(t, repo.Update(context.Background(), &ghost), domain.ErrUserNotFound)
}

func TestUserRepository_GetByResetToken(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	hash := "deadbeef"
	expire := now.Add(10 * time.Minute)
	user := seedDBUser(t, repo, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h1"})
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpire = &expire
	require.NoError(t, repo.Update(context.Background(), &user))

	got, err := repo.GetByResetToken(context.Background(), "deadbeef", now)
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	// Past the expiry the token no longer resolves.
	_, err = repo.GetByResetToken(context.Background(), "deadbeef", expire.Add(time.Second))
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByResetToken(context.Background(), "wrong", now)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListFilters(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	seedDBUser(t, repo, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h", CreatedAt: base})
	seedDBUser(t, repo, domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com", PasswordHash: "h", CreatedAt: base.Add(time.Minute)})
	seedDBUser(t, repo, domain.User{ID: "m1", Name: "Mallory", Email: "mallory@example.com", PasswordHash: "h",
		Role: domain.RoleManager, CreatedAt: base.Add(2 * time.Minute)})

	role := domain.RoleManager
	managers, total, err := repo.List(context.Background(), domain.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "m1", managers[0].ID)

	matches, total, err := repo.List(context.Background(), domain.UserFilter{Search: "al"})
	require.NoError(t, err)
	require.Equal(t, 2, total) // Alice and Mallory
	require.Len(t, matches, 2)

	// Total counts all matches even when the page is smaller.
	page, total, err := repo.List(context.Background(), domain.UserFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, "u2", page[0].ID)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedDBUser(t, repo, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "u1"), domain.ErrUserNotFound)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}
