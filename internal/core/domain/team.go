package domain

import "time"

type Team struct {
	ID          string
	Name        string
	Description *string
	MemberIDs   []string
	CreatedBy   string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports membership without touching the store.
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type CreateTeamInput struct {
	Name        string
	Description *string
	MemberIDs   []string
}

type UpdateTeamInput struct {
	Name           *string
	Description    *string
	DescriptionSet bool
	IsActive       *bool
}
