package scorers

import "github.com/pageza/logbook-engine/internal/domain"

// FirstHour implements §4.5.1: satisfaction is 1 iff the crew's
// earliest-start assignment matches the preference's target hour (when
// intValue is set) or its bound role (when intValue is absent).
func FirstHour(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, _ Context) Result {
	res := Result{CrewID: cp.CrewID, RolePreferenceID: cp.RolePreferenceID, Applicable: true}
	if len(assignments) == 0 {
		return res
	}
	first := sortedByStart(assignments)[0]

	var s float64
	switch {
	case cp.IntValue != nil:
		targetHour := *cp.IntValue
		if first.StartMin/60 == targetHour {
			s = 1
		}
	case pref.RoleID != nil:
		if first.RoleID == *pref.RoleID {
			s = 1
		}
	default:
		// Degenerate input (§4.5.1): neither target hour nor role bound.
		s = 0
	}

	res.Satisfaction = s
	res.Met = s > 0.5
	res.WeightApplied = weight(pref, cp)
	return res
}
