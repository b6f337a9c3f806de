package domain

import "github.com/google/uuid"

// Assignment is one (crew, role) time interval in a Logbook. StartMin and
// EndMin are slot-aligned per internal/slotalg.
type Assignment struct {
	LogbookID uuid.UUID `json:"logbook_id" db:"logbook_id"`
	CrewID    uuid.UUID `json:"crew_id" db:"crew_id"`
	RoleID    uuid.UUID `json:"role_id" db:"role_id"`
	StartMin  int       `json:"start_min" db:"start_min"`
	EndMin    int       `json:"end_min" db:"end_min"`
}

// Minutes returns the assignment's duration in minutes.
func (a Assignment) Minutes() int {
	return a.EndMin - a.StartMin
}
