package validators

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// distinctCrewCoveringHour returns the count of distinct crew whose
// assignment on roleID covers the full hour h.
func distinctCrewCoveringHour(assignments []domain.Assignment, roleID uuid.UUID, h int) int {
	seen := make(map[uuid.UUID]struct{})
	for _, a := range assignments {
		if a.RoleID != roleID {
			continue
		}
		if coversHour(a.StartMin, a.EndMin, h) {
			seen[a.CrewID] = struct{}{}
		}
	}
	return len(seen)
}

// HourlyCoverage checks §4.4.5: for each HourlyRoleConstraint, at least N
// distinct crew cover the full hour on that role.
func HourlyCoverage(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	var violations []Violation

	for _, c := range snap.Hourly {
		got := distinctCrewCoveringHour(assignments, c.RoleID, c.Hour)
		if got < c.RequiredPerHour {
			code := c.RoleID.String()
			if role, ok := roles[c.RoleID]; ok {
				code = role.Code
			}
			violations = append(violations, Violation{
				Family: FamilyHourlyCoverage,
				Message: fmt.Sprintf("role %s hour %d requires %d crew, got %d",
					code, c.Hour, c.RequiredPerHour, got),
				RoleID: roleRef(c.RoleID),
			})
		}
	}

	return violations
}
