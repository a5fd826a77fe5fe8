package domain

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")
	ErrTeamNotFound = errors.New("team not found")

	ErrEmailTaken    = errors.New("email already registered")
	ErrTeamNameTaken = errors.New("team name already taken")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrResetMailFailed    = errors.New("reset mail delivery failed")

	// ErrTaskForbidden: the actor may not touch this task at all.
	ErrTaskForbidden = errors.New("not authorized for this task")
	// ErrFieldForbidden: the actor may touch the task but not this field.
	ErrFieldForbidden = errors.New("field not permitted for role")
	ErrRoleForbidden  = errors.New("operation not permitted for role")

	ErrInvalidAssignment = errors.New("invalid task assignment")
	// ErrInvalidTask: the task payload itself is malformed (blank title,
	// unknown status or priority), as opposed to a bad assignment.
	ErrInvalidTask = errors.New("invalid task data")
)
