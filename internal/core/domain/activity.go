package domain

import "time"

type Action string

const (
	ActionUserRegistered     Action = "USER_REGISTERED"
	ActionLogin              Action = "LOGIN"
	ActionLoginFailed        Action = "LOGIN_FAILED"
	ActionPasswordResetAsked Action = "PASSWORD_RESET_REQUESTED"
	ActionPasswordReset      Action = "PASSWORD_RESET"
	ActionTaskCreated        Action = "TASK_CREATED"
	ActionTaskUpdated        Action = "TASK_UPDATED"
	ActionTaskStatusChanged  Action = "TASK_STATUS_CHANGED"
	ActionTaskDeleted        Action = "TASK_DELETED"
	ActionTeamCreated        Action = "TEAM_CREATED"
	ActionTeamUpdated        Action = "TEAM_UPDATED"
	ActionTeamDeleted        Action = "TEAM_DELETED"
	ActionTeamMemberAdded    Action = "TEAM_MEMBER_ADDED"
	ActionTeamMemberRemoved  Action = "TEAM_MEMBER_REMOVED"
	ActionUserUpdated        Action = "USER_UPDATED"
	ActionUserRoleChanged    Action = "USER_ROLE_CHANGED"
	ActionUserDeleted        Action = "USER_DELETED"
)

type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
	ActivityWarning ActivityStatus = "warning"
)

// FieldChange is a before/after pair for one changed field.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// ActivityLog is append-only: entries are never mutated after creation.
type ActivityLog struct {
	ID           string
	Action       Action
	PerformedBy  string
	EntityType   *string
	EntityID     *string
	Changes      map[string]FieldChange
	IPAddress    string
	UserAgent    string
	Status       ActivityStatus
	ErrorMessage *string
	CreatedAt    time.Time
}

type ActivityFilter struct {
	Action      *Action
	PerformedBy *string
	Status      *ActivityStatus
	Start       *time.Time
	End         *time.Time
	Limit       int
	Offset      int
}
