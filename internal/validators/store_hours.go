package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// StoreHoursConfinement checks §4.4.2: roles that disallow outside-hours
// assignments must stay within [regHoursStart, regHoursEnd].
func StoreHoursConfinement(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	var violations []Violation

	for _, a := range assignments {
		role, ok := roles[a.RoleID]
		if !ok || role.AllowOutsideStoreHours {
			continue
		}
		if a.StartMin < snap.Store.RegHoursStart || a.EndMin > snap.Store.RegHoursEnd {
			violations = append(violations, Violation{
				Family: FamilyStoreHours,
				Message: fmt.Sprintf("assignment [%d,%d) for role %s falls outside store hours [%d,%d)",
					a.StartMin, a.EndMin, role.Code, snap.Store.RegHoursStart, snap.Store.RegHoursEnd),
				CrewID: crewRef(a.CrewID),
				RoleID: roleRef(a.RoleID),
			})
		}
	}

	return violations
}
