package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type AssignmentType string

const (
	AssignmentSelf       AssignmentType = "self"
	AssignmentIndividual AssignmentType = "individual"
	AssignmentTeam       AssignmentType = "team"
)

// Assignment is a tagged union: a task is assigned to exactly one user
// (self or individual) or exactly one team. The constructors are the only
// way to build a valid value, so assignedTo XOR assignedToTeam holds by
// construction.
type Assignment struct {
	Type   AssignmentType
	UserID string
	TeamID string
}

func SelfAssignment(userID string) Assignment {
	return Assignment{Type: AssignmentSelf, UserID: userID}
}

func IndividualAssignment(userID string) Assignment {
	return Assignment{Type: AssignmentIndividual, UserID: userID}
}

func TeamAssignment(teamID string) Assignment {
	return Assignment{Type: AssignmentTeam, TeamID: teamID}
}

func (a Assignment) Validate() error {
	switch a.Type {
	case AssignmentSelf, AssignmentIndividual:
		if a.UserID == "" || a.TeamID != "" {
			return ErrInvalidAssignment
		}
	case AssignmentTeam:
		if a.TeamID == "" || a.UserID != "" {
			return ErrInvalidAssignment
		}
	default:
		return ErrInvalidAssignment
	}
	return nil
}

type Task struct {
	ID          string
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	StartDate   *time.Time
	DueDate     *time.Time
	Assignment  Assignment
	CreatedBy   string
	CompletedAt *time.Time
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overdue reports whether the task is past due and not completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	StartDate   *time.Time
	DueDate     *time.Time
	Assignment  Assignment
	Tags        []string
}

// UpdateTaskInput carries a partial update. The *Set flags distinguish
// "field absent" from "field explicitly set to null".
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	Priority       *TaskPriority
	StartDate      *time.Time
	StartDateSet   bool
	DueDate        *time.Time
	DueDateSet     bool
	Assignment     *Assignment
	Tags           []string
	TagsSet        bool
}

// Fields lists the task fields the update touches, in the names the
// authorizer understands.
func (in UpdateTaskInput) Fields() []string {
	var fields []string
	if in.Title != nil {
		fields = append(fields, "title")
	}
	if in.DescriptionSet {
		fields = append(fields, "description")
	}
	if in.Status != nil {
		fields = append(fields, "status")
	}
	if in.Priority != nil {
		fields = append(fields, "priority")
	}
	if in.StartDateSet {
		fields = append(fields, "startDate")
	}
	if in.DueDateSet {
		fields = append(fields, "dueDate")
	}
	if in.Assignment != nil {
		fields = append(fields, "assignment")
	}
	if in.TagsSet {
		fields = append(fields, "tags")
	}
	return fields
}

type TaskFilter struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	AssignedTo *string
	Limit      int
	Offset     int
}

// TaskScope is the visibility predicate for one actor, translated by the
// repositories into a query filter. All=true means no restriction.
type TaskScope struct {
	All     bool
	UserID  string
	TeamIDs []string
}
