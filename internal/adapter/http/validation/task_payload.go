package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

var errAssignmentAmbiguous = errors.New("assignedTo and assignedToTeam are mutually exclusive")

// BuildCreateTaskInput turns a bound create payload into a domain input.
// The assignment type may be omitted: a team id implies a team assignment,
// a user id other than the caller implies an individual one, and anything
// else falls back to self.
func BuildCreateTaskInput(req dto.CreateTaskRequest, actorID string) (domain.CreateTaskInput, error) {
	var in domain.CreateTaskInput

	in.Title = strings.TrimSpace(req.Title)
	in.Description = req.Description
	in.Tags = req.Tags

	if req.Status != nil {
		in.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		in.Priority = domain.TaskPriority(*req.Priority)
	}

	var err error
	if in.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return in, err
	}
	if in.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
		return in, err
	}

	in.Assignment, err = buildAssignment(req.AssignmentType, req.AssignedTo, req.AssignedToTeam, actorID)
	return in, err
}

// BuildUpdateTaskInput turns a bound update payload into a partial domain
// input. The raw body is consulted to tell an absent field from one set to
// null; only keys present in the body produce a change.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, body []byte, actorID string) (domain.UpdateTaskInput, error) {
	var in domain.UpdateTaskInput

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return in, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		in.Title = &title
	}
	if _, ok := raw["description"]; ok {
		in.DescriptionSet = true
		in.Description = req.Description
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}

	var err error
	if _, ok := raw["startDate"]; ok {
		in.StartDateSet = true
		if in.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
			return in, err
		}
	}
	if _, ok := raw["dueDate"]; ok {
		in.DueDateSet = true
		if in.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
			return in, err
		}
	}
	if _, ok := raw["tags"]; ok {
		in.TagsSet = true
		in.Tags = req.Tags
	}

	_, hasType := raw["assignmentType"]
	_, hasUser := raw["assignedTo"]
	_, hasTeam := raw["assignedToTeam"]
	if hasType || hasUser || hasTeam {
		assignment, err := buildAssignment(req.AssignmentType, req.AssignedTo, req.AssignedToTeam, actorID)
		if err != nil {
			return in, err
		}
		in.Assignment = &assignment
	}
	return in, nil
}

func buildAssignment(kind, userID, teamID *string, actorID string) (domain.Assignment, error) {
	if userID != nil && teamID != nil {
		return domain.Assignment{}, errAssignmentAmbiguous
	}

	resolved := domain.AssignmentSelf
	switch {
	case kind != nil:
		resolved = domain.AssignmentType(*kind)
	case teamID != nil:
		resolved = domain.AssignmentTeam
	case userID != nil && *userID != actorID:
		resolved = domain.AssignmentIndividual
	}

	switch resolved {
	case domain.AssignmentSelf:
		return domain.SelfAssignment(actorID), nil
	case domain.AssignmentIndividual:
		if userID == nil {
			return domain.Assignment{}, domain.ErrInvalidAssignment
		}
		return domain.IndividualAssignment(*userID), nil
	case domain.AssignmentTeam:
		if teamID == nil {
			return domain.Assignment{}, domain.ErrInvalidAssignment
		}
		return domain.TeamAssignment(*teamID), nil
	}
	return domain.Assignment{}, domain.ErrInvalidAssignment
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
