package scorers

import (
	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Favorite implements §4.5.2, the dominant-role rule: satisfaction is 1 iff
// the preferred role's minutes are at least half of the crew's total
// non-break minutes AND at least as many as every other single role's
// minutes.
func Favorite(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, ctx Context) Result {
	res := Result{CrewID: cp.CrewID, RolePreferenceID: cp.RolePreferenceID, Applicable: true}
	if pref.RoleID == nil {
		return res
	}

	minutesByRole := make(map[uuid.UUID]int)
	total := 0
	for _, a := range assignments {
		if role, ok := ctx.RoleByID[a.RoleID]; ok && role.IsBreakRole {
			continue
		}
		minutesByRole[a.RoleID] += a.Minutes()
		total += a.Minutes()
	}
	if total == 0 {
		return res
	}

	preferredMinutes := minutesByRole[*pref.RoleID]

	dominant := preferredMinutes*2 >= total
	if dominant {
		for roleID, m := range minutesByRole {
			if roleID != *pref.RoleID && m > preferredMinutes {
				dominant = false
				break
			}
		}
	}

	s := 0.0
	if dominant {
		s = 1
	}
	res.Satisfaction = s
	res.Met = s > 0.5
	res.WeightApplied = weight(pref, cp)
	return res
}
