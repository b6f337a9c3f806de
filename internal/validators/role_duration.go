package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/slotalg"
)

// RoleSlotDuration checks §4.4.3: minSlots <= slots(a) <= maxSlots and
// slots(a) is a multiple of blockSize.
func RoleSlotDuration(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	base := snap.Store.BaseSlotMinutes
	var violations []Violation

	for _, a := range assignments {
		role, ok := roles[a.RoleID]
		if !ok {
			continue
		}
		slots, err := slotalg.SlotsForAssignment(a.StartMin, a.EndMin, base)
		if err != nil {
			// Slot alignment failures are reported by SlotAlignment; skip here
			// to avoid duplicate noise.
			continue
		}

		outOfRange := slots < role.MinSlots || slots > role.MaxSlots
		wrongBlock := role.BlockSize > 0 && slots%role.BlockSize != 0
		if outOfRange || wrongBlock {
			violations = append(violations, Violation{
				Family: FamilyRoleSlotDuration,
				Message: fmt.Sprintf("role %s assignment has %d slots (min=%d, max=%d), not in blocks of %d slots",
					role.Code, slots, role.MinSlots, role.MaxSlots, role.BlockSize),
				CrewID: crewRef(a.CrewID),
				RoleID: roleRef(a.RoleID),
			})
		}
	}

	return violations
}
