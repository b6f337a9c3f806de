package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Availability checks §4.4.9: every assignment is contained in the crew's
// shift, and a crew's assignments are pairwise non-overlapping (exact
// handoff permitted).
func Availability(assignments []domain.Assignment, snap Snapshot) []Violation {
	shiftByCrew := snap.ShiftByCrew()
	var violations []Violation

	for _, a := range assignments {
		shift, ok := shiftByCrew[a.CrewID]
		if !ok {
			violations = append(violations, Violation{
				Family:  FamilyAvailability,
				Message: fmt.Sprintf("crew %s has an assignment but no shift on this date", a.CrewID),
				CrewID:  crewRef(a.CrewID),
				RoleID:  roleRef(a.RoleID),
			})
			continue
		}
		if a.StartMin < shift.StartMin || a.EndMin > shift.EndMin {
			violations = append(violations, Violation{
				Family: FamilyAvailability,
				Message: fmt.Sprintf("crew %s assignment [%d,%d) is not contained in shift [%d,%d)",
					a.CrewID, a.StartMin, a.EndMin, shift.StartMin, shift.EndMin),
				CrewID: crewRef(a.CrewID),
				RoleID: roleRef(a.RoleID),
			})
		}
	}

	for crewID, group := range ByCrew(assignments) {
		for i := 1; i < len(group); i++ {
			if group[i].StartMin < group[i-1].EndMin {
				violations = append(violations, Violation{
					Family: FamilyAvailability,
					Message: fmt.Sprintf("crew %s has overlapping assignments [%d,%d) and [%d,%d)",
						crewID, group[i-1].StartMin, group[i-1].EndMin, group[i].StartMin, group[i].EndMin),
					CrewID: crewRef(crewID),
				})
			}
		}
	}

	return violations
}
