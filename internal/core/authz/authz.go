// Package authz holds the one role -> capability table the whole API
// consults. Visibility scoping and field-level mutation checks both derive
// from it, so the rule set lives in a single place instead of being
// re-derived per endpoint.
package authz

import (
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

type Capability uint16

const (
	CapViewAllTasks Capability = 1 << iota
	CapEditAllTaskFields
	CapDeleteTasks
	CapAssignOthers
	CapManageTeams
	CapManageUsers
	CapViewAnyAnalytics
	CapViewActivityLogs
)

var roleCapabilities = map[domain.Role]Capability{
	domain.RoleUser: 0,
	// Managers are organizationally trusted to see every task.
	domain.RoleManager: CapViewAllTasks | CapEditAllTaskFields | CapDeleteTasks |
		CapAssignOthers | CapManageTeams | CapViewAnyAnalytics,
	domain.RoleAdmin: CapViewAllTasks | CapEditAllTaskFields | CapDeleteTasks |
		CapAssignOthers | CapManageTeams | CapManageUsers |
		CapViewAnyAnalytics | CapViewActivityLogs,
}

func Can(role domain.Role, cap Capability) bool {
	return roleCapabilities[role]&cap != 0
}

// userEditableFields is the field subset a plain user may change on a task
// assigned to them.
var userEditableFields = map[string]bool{
	"status":      true,
	"description": true,
}

// ScopeFor builds the visibility predicate for an actor. teamIDs are the
// actor's active team memberships, resolved by the caller; they are only
// consulted for roles without CapViewAllTasks.
func ScopeFor(actor domain.Actor, teamIDs []string) domain.TaskScope {
	if Can(actor.Role, CapViewAllTasks) {
		return domain.TaskScope{All: true}
	}
	return domain.TaskScope{UserID: actor.ID, TeamIDs: teamIDs}
}

// CanView checks a single already-fetched task against the actor's scope.
func CanView(actor domain.Actor, task *domain.Task, teamIDs []string) bool {
	scope := ScopeFor(actor, teamIDs)
	if scope.All {
		return true
	}
	if task.Assignment.UserID == actor.ID {
		return true
	}
	if task.Assignment.Type == domain.AssignmentTeam {
		for _, id := range teamIDs {
			if id == task.Assignment.TeamID {
				return true
			}
		}
	}
	return task.CreatedBy == actor.ID && task.Assignment.Type == domain.AssignmentSelf
}

// AuthorizeUpdate decides whether the actor may apply an update touching
// the named fields. Ownership is checked before field permissions so a
// foreign task yields ErrTaskForbidden, not ErrFieldForbidden.
func AuthorizeUpdate(actor domain.Actor, task *domain.Task, fields []string) error {
	if Can(actor.Role, CapEditAllTaskFields) {
		return nil
	}
	if task.Assignment.UserID != actor.ID {
		return domain.ErrTaskForbidden
	}
	for _, f := range fields {
		if !userEditableFields[f] {
			return domain.ErrFieldForbidden
		}
	}
	return nil
}

func AuthorizeDelete(actor domain.Actor) error {
	if !Can(actor.Role, CapDeleteTasks) {
		return domain.ErrRoleForbidden
	}
	return nil
}

// AuthorizeAssignment checks who may create a task with the given
// assignment: plain users only self-assign.
func AuthorizeAssignment(actor domain.Actor, a domain.Assignment) error {
	if Can(actor.Role, CapAssignOthers) {
		return nil
	}
	if a.Type == domain.AssignmentSelf && a.UserID == actor.ID {
		return nil
	}
	return domain.ErrRoleForbidden
}
