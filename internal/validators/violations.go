package validators

import "github.com/google/uuid"

// Family names the ten hard-constraint families of §4.4.
type Family string

const (
	FamilySlotAlignment       Family = "SlotAlignment"
	FamilyStoreHours          Family = "StoreHoursConfinement"
	FamilyRoleSlotDuration    Family = "RoleSlotDuration"
	FamilyConsecutive         Family = "ConsecutiveSlots"
	FamilyHourlyCoverage      Family = "HourlyCoverage"
	FamilyWindowCoverage      Family = "WindowCoverage"
	FamilyDailyHours          Family = "DailyHours"
	FamilyBreakPolicy         Family = "BreakPolicy"
	FamilyAvailability        Family = "CrewAvailability"
	FamilyQualification       Family = "CrewQualification"
)

// Violation is one hard-constraint failure. CrewID/RoleID are populated when
// the violation is attributable to a specific crew/role.
type Violation struct {
	Family  Family
	Message string
	CrewID  *uuid.UUID
	RoleID  *uuid.UUID
}

func crewRef(id uuid.UUID) *uuid.UUID { return &id }
func roleRef(id uuid.UUID) *uuid.UUID { return &id }
