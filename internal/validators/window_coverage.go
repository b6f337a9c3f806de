package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// WindowCoverage checks §4.4.6: every hour of [startHour, endHour) satisfies
// the hourly-coverage rule with count N, and no crew is counted for the same
// window in more than one non-contiguous segment.
func WindowCoverage(assignments []domain.Assignment, snap Snapshot) []Violation {
	roles := snap.RoleByID()
	var violations []Violation

	for _, c := range snap.Window {
		code := c.RoleID.String()
		if role, ok := roles[c.RoleID]; ok {
			code = role.Code
		}

		for h := c.StartHour; h < c.EndHour; h++ {
			got := distinctCrewCoveringHour(assignments, c.RoleID, h)
			if got < c.RequiredPerHour {
				violations = append(violations, Violation{
					Family: FamilyWindowCoverage,
					Message: fmt.Sprintf("role %s window [%d,%d) hour %d requires %d crew, got %d",
						code, c.StartHour, c.EndHour, h, c.RequiredPerHour, got),
					RoleID: roleRef(c.RoleID),
				})
			}
		}

		windowStart, windowEnd := c.StartHour*60, c.EndHour*60
		perCrew := make(map[string][]domain.Assignment)
		for _, a := range assignments {
			if a.RoleID != c.RoleID {
				continue
			}
			// Intersect [a.StartMin,a.EndMin) with the window.
			start, end := a.StartMin, a.EndMin
			if start < windowStart {
				start = windowStart
			}
			if end > windowEnd {
				end = windowEnd
			}
			if start >= end {
				continue
			}
			perCrew[a.CrewID.String()] = append(perCrew[a.CrewID.String()], domain.Assignment{
				CrewID: a.CrewID, RoleID: a.RoleID, StartMin: start, EndMin: end,
			})
		}
		for crewKey, group := range perCrew {
			if len(group) < 2 {
				continue
			}
			sorted := append([]domain.Assignment(nil), group...)
			sortAssignmentsByStart(sorted)
			for i := 1; i < len(sorted); i++ {
				if sorted[i].StartMin != sorted[i-1].EndMin {
					violations = append(violations, Violation{
						Family: FamilyWindowCoverage,
						Message: fmt.Sprintf("crew %s role %s occupies non-contiguous segments within window [%d,%d)",
							crewKey, code, c.StartHour, c.EndHour),
						RoleID: roleRef(c.RoleID),
					})
					break
				}
			}
		}
	}

	return violations
}

func sortAssignmentsByStart(a []domain.Assignment) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1].StartMin > a[j].StartMin; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}
