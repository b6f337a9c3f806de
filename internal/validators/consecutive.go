package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Consecutive checks §4.4.4: for roles with slotsMustBeConsecutive, a given
// crew's assignments on that role on that date form a single contiguous
// interval (no gap between consecutive assignments).
func Consecutive(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	var violations []Violation

	for key, group := range ByCrewRole(assignments) {
		crewID, roleID := key[0], key[1]
		role, ok := roles[roleID]
		if !ok || !role.SlotsMustBeConsecutive || len(group) < 2 {
			continue
		}
		for i := 1; i < len(group); i++ {
			if group[i].StartMin != group[i-1].EndMin {
				violations = append(violations, Violation{
					Family: FamilyConsecutive,
					Message: fmt.Sprintf("crew %s role %s assignments are not contiguous: gap between [%d,%d) and [%d,%d)",
						crewID, role.Code, group[i-1].StartMin, group[i-1].EndMin, group[i].StartMin, group[i].EndMin),
					CrewID: crewRef(crewID),
					RoleID: roleRef(roleID),
				})
			}
		}
	}

	return violations
}
