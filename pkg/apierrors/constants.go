package apierrors

const (
	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgTaskNotFound       = "taskNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgTeamNotFound       = "teamNotFound"
	MsgEmailTaken         = "emailTaken"
	MsgTeamNameTaken      = "teamNameTaken"
	MsgInvalidCredentials = "invalidCredentials"
	MsgAccountLocked      = "accountLocked"
	MsgAccountInactive    = "accountInactive"
	MsgInvalidResetToken  = "invalidResetToken"
	MsgResetMailFailed    = "resetMailFailed"
	MsgResetMailSent      = "resetMailSent"
	MsgPasswordResetDone  = "passwordResetDone"
	MsgNotAuthorized      = "notAuthorized"
	MsgTaskForbidden      = "taskForbidden"
	MsgFieldForbidden     = "fieldForbidden"
	MsgRoleForbidden      = "roleForbidden"
	MsgInvalidAssignment  = "invalidAssignment"
	MsgInvalidTask        = "invalidTask"
	MsgMissingToken       = "missingToken"
	MsgTooManyRequests    = "tooManyRequests"
	MsgServerError        = "serverError"
	MsgFailListTasks      = "failListTasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailListTeams      = "failListTeams"
	MsgFailSaveTeam       = "failSaveTeam"
	MsgFailAnalytics      = "failAnalytics"
	MsgFailListUsers      = "failListUsers"
	MsgFailSaveUser       = "failSaveUser"
	MsgFailDeleteUser     = "failDeleteUser"
	MsgFailListActivity   = "failListActivity"
)
