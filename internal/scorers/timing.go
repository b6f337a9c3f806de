package scorers

import "github.com/pageza/logbook-engine/internal/domain"

// Timing implements §4.5.3 (typically break placement): satisfaction is a
// linear ramp across the break window, direction set by IntValue (-1 early,
// +1 late). A shift too short to carry a break is not applicable and is
// excluded from both aggregate numerator and denominator (§4.5).
func Timing(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, ctx Context) Result {
	res := Result{CrewID: cp.CrewID, RolePreferenceID: cp.RolePreferenceID}

	shift, hasShift := ctx.ShiftByID[cp.CrewID]
	if !hasShift {
		res.Reason = "no shift on record for this crew"
		return res
	}

	var brk *domain.Assignment
	for i := range assignments {
		if role, ok := ctx.RoleByID[assignments[i].RoleID]; ok && role.IsBreakRole {
			brk = &assignments[i]
			break
		}
	}
	if brk == nil {
		res.Reason = "no break assignment placed for this crew"
		return res
	}

	res.Applicable = true

	window := ctx.BreakWindowEnd - ctx.BreakWindowStart
	if window <= 0 {
		return res
	}
	delta := float64(brk.StartMin-shift.StartMin-ctx.BreakWindowStart) / float64(window)

	var s float64
	if cp.IntValue != nil && *cp.IntValue < 0 {
		s = clamp01(1 - delta)
	} else {
		s = clamp01(delta)
	}

	res.Satisfaction = s
	res.Met = s > 0.5
	res.WeightApplied = weight(pref, cp)
	return res
}
