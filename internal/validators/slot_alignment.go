package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// SlotAlignment checks §4.4.1: both boundaries of every assignment are
// multiples of baseSlotMinutes, and HOUR_ONLY roles additionally require
// multiples of 60.
func SlotAlignment(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	base := snap.Store.BaseSlotMinutes
	var violations []Violation

	for _, a := range assignments {
		if base <= 0 || a.StartMin%base != 0 || a.EndMin%base != 0 {
			violations = append(violations, Violation{
				Family:  FamilySlotAlignment,
				Message: fmt.Sprintf("assignment [%d,%d) for role %s is not aligned to base slot size %d", a.StartMin, a.EndMin, a.RoleID, base),
				CrewID:  crewRef(a.CrewID),
				RoleID:  roleRef(a.RoleID),
			})
			continue
		}

		role, ok := roles[a.RoleID]
		if ok && role.SlotSizeMode == domain.SlotSizeHourOnly {
			if a.StartMin%60 != 0 || a.EndMin%60 != 0 {
				violations = append(violations, Violation{
					Family:  FamilySlotAlignment,
					Message: fmt.Sprintf("assignment [%d,%d) for HOUR_ONLY role %s must align to hour boundaries", a.StartMin, a.EndMin, role.Code),
					CrewID:  crewRef(a.CrewID),
					RoleID:  roleRef(a.RoleID),
				})
			}
		}
	}

	return violations
}
