package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Qualification checks §4.4.10: every assignment's (crew, role) pair has a
// matching CrewRole row, unless the role is an explicit universal fallback.
func Qualification(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	qualified := snap.Qualified()
	var violations []Violation

	for _, a := range assignments {
		role, ok := roles[a.RoleID]
		if ok && role.IsUniversalFallback {
			continue
		}
		if _, qualifiedForRole := qualified[a.RoleID][a.CrewID]; qualifiedForRole {
			continue
		}
		code := a.RoleID.String()
		if ok {
			code = role.Code
		}
		violations = append(violations, Violation{
			Family:  FamilyQualification,
			Message: fmt.Sprintf("crew %s is not qualified for role %s", a.CrewID, code),
			CrewID:  crewRef(a.CrewID),
			RoleID:  roleRef(a.RoleID),
		})
	}

	return violations
}
