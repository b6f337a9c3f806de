package validators

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

const dailyHoursEpsilon = 0.001

// DailyHours checks §4.4.7: for each DailyRoleConstraint, the sum of
// assignment minutes for (crew, role) equals 60*H exactly within epsilon.
func DailyHours(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	grouped := ByCrewRole(assignments)
	var violations []Violation

	for _, c := range snap.Daily {
		minutes := 0
		for _, a := range grouped[[2]uuid.UUID{c.CrewID, c.RoleID}] {
			minutes += a.Minutes()
		}

		gotHours := float64(minutes) / 60.0
		diff := gotHours - c.RequiredHours
		if math.Abs(diff) > dailyHoursEpsilon {
			code := c.RoleID.String()
			if role, ok := roles[c.RoleID]; ok {
				code = role.Code
			}
			direction := "under"
			if diff > 0 {
				direction = "over"
			}
			violations = append(violations, Violation{
				Family: FamilyDailyHours,
				Message: fmt.Sprintf("crew %s role %s requires %.2f hours, got %.2f hours (%s by %.2f)",
					c.CrewID, code, c.RequiredHours, gotHours, direction, math.Abs(diff)),
				CrewID: crewRef(c.CrewID),
				RoleID: roleRef(c.RoleID),
			})
		}
	}

	return violations
}
