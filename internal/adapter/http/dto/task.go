package dto

type TaskItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	StartDate      *string  `json:"startDate,omitempty"`
	DueDate        *string  `json:"dueDate,omitempty"`
	AssignmentType string   `json:"assignmentType"`
	AssignedTo     *string  `json:"assignedTo,omitempty"`
	AssignedToTeam *string  `json:"assignedToTeam,omitempty"`
	CreatedBy      string   `json:"createdBy"`
	CompletedAt    *string  `json:"completedAt,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    *string  `json:"description" binding:"omitempty,max=65535"`
	Status         *string  `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority       *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate      *string  `json:"startDate" binding:"omitempty"`
	DueDate        *string  `json:"dueDate" binding:"omitempty"`
	AssignmentType *string  `json:"assignmentType" binding:"omitempty,oneof=self individual team"`
	AssignedTo     *string  `json:"assignedTo" binding:"omitempty"`
	AssignedToTeam *string  `json:"assignedToTeam" binding:"omitempty"`
	Tags           []string `json:"tags" binding:"omitempty,max=20,dive,max=32"`
}

type UpdateTaskRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=255"`
	Description    *string  `json:"description" binding:"omitempty,max=65535"`
	Status         *string  `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority       *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate      *string  `json:"startDate" binding:"omitempty"`
	DueDate        *string  `json:"dueDate" binding:"omitempty"`
	AssignmentType *string  `json:"assignmentType" binding:"omitempty,oneof=self individual team"`
	AssignedTo     *string  `json:"assignedTo" binding:"omitempty"`
	AssignedToTeam *string  `json:"assignedToTeam" binding:"omitempty"`
	Tags           []string `json:"tags" binding:"omitempty,max=20,dive,max=32"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed"`
}
