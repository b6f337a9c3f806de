package scorers

import "github.com/pageza/logbook-engine/internal/domain"

// Consecutive implements §4.5.4: satisfaction falls off with the number of
// role transitions across the crew's chronologically ordered non-break
// assignments, 1 when there is at most one assignment.
func Consecutive(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, ctx Context) Result {
	res := Result{CrewID: cp.CrewID, RolePreferenceID: cp.RolePreferenceID, Applicable: true}

	var nonBreak []domain.Assignment
	for _, a := range assignments {
		if role, ok := ctx.RoleByID[a.RoleID]; ok && role.IsBreakRole {
			continue
		}
		nonBreak = append(nonBreak, a)
	}
	nonBreak = sortedByStart(nonBreak)

	n := len(nonBreak)
	rMax := n - 1
	if rMax < 0 {
		rMax = 0
	}

	var s float64 = 1
	if rMax > 0 {
		transitions := 0
		for i := 1; i < n; i++ {
			if nonBreak[i].RoleID != nonBreak[i-1].RoleID {
				transitions++
			}
		}
		s = 1 - float64(transitions)/float64(rMax)
	}

	res.Satisfaction = clamp01(s)
	res.Met = res.Satisfaction > 0.5
	res.WeightApplied = weight(pref, cp)
	return res
}
