package domain

import "github.com/google/uuid"

// Crew belongs to exactly one Store.
type Crew struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	StoreID  uuid.UUID `json:"store_id" db:"store_id"`
	Tags     []string  `json:"tags,omitempty" db:"tags"`
}

// CrewRole asserts that Crew is qualified for Role.
type CrewRole struct {
	CrewID         uuid.UUID `json:"crew_id" db:"crew_id"`
	RoleID         uuid.UUID `json:"role_id" db:"role_id"`
	Specialization *string   `json:"specialization,omitempty" db:"specialization"`
}

// Shift is the one (crew, date) window a crew is present for.
type Shift struct {
	CrewID   uuid.UUID `json:"crew_id" db:"crew_id"`
	Date     string    `json:"date" db:"date"`
	StartMin int       `json:"start_min" db:"start_min"`
	EndMin   int       `json:"end_min" db:"end_min"`
}
