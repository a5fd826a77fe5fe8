package domain

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountInactive  AccountStatus = "inactive"
)

const (
	// MaxFailedLogins is the consecutive-failure threshold that locks an account.
	MaxFailedLogins = 5
	// LockoutDuration is how long a locked account stays locked.
	LockoutDuration = 2 * time.Hour
	// ResetTokenTTL bounds the lifetime of a password-reset token.
	ResetTokenTTL = 10 * time.Minute
)

type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                Role
	IsActive            bool
	AccountStatus       AccountStatus
	FailedLoginAttempts int
	LockoutUntil        *time.Time
	LastLogin           *time.Time
	LastPasswordChange  *time.Time
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Locked reports whether the account is inside its lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockoutUntil != nil && now.Before(*u.LockoutUntil)
}

// CanLogin reports whether the account is allowed to authenticate at all,
// independent of credentials.
func (u *User) CanLogin() bool {
	return u.IsActive && u.AccountStatus == AccountActive
}

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   string
	Role Role
}

// RequestMeta carries the client context recorded on audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserFilter struct {
	Role          *Role
	AccountStatus *AccountStatus
	Search        string
	Limit         int
	Offset        int
}

type UpdateUserInput struct {
	Name          *string
	Role          *Role
	IsActive      *bool
	AccountStatus *AccountStatus
}
