package domain

import "github.com/google/uuid"

// HourlyRoleConstraint requires at least RequiredPerHour distinct crew on
// RoleID covering the full hour Hour, for HOURLY roles (§4.4.5).
type HourlyRoleConstraint struct {
	Date             string    `json:"date" db:"date"`
	Hour             int       `json:"hour" db:"hour"`
	RoleID           uuid.UUID `json:"role_id" db:"role_id"`
	RequiredPerHour  int       `json:"required_per_hour" db:"required_per_hour"`
}

// WindowRoleConstraint is the hourly-coverage rule applied uniformly over
// [StartHour, EndHour) for HOURLY_WINDOW roles (§4.4.6).
type WindowRoleConstraint struct {
	Date            string    `json:"date" db:"date"`
	RoleID          uuid.UUID `json:"role_id" db:"role_id"`
	StartHour       int       `json:"start_hour" db:"start_hour"`
	EndHour         int       `json:"end_hour" db:"end_hour"`
	RequiredPerHour int       `json:"required_per_hour" db:"required_per_hour"`
}

// DailyRoleConstraint requires the named crew to accrue exactly
// RequiredHours on RoleID for the day, for DAILY roles (§4.4.7).
type DailyRoleConstraint struct {
	Date          string    `json:"date" db:"date"`
	CrewID        uuid.UUID `json:"crew_id" db:"crew_id"`
	RoleID        uuid.UUID `json:"role_id" db:"role_id"`
	RequiredHours float64   `json:"required_hours" db:"required_hours"`
}
