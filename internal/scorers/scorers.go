// Package scorers implements the four preference-scorer families of §4.5.
// Every scorer is a pure function over one CrewPreference and the
// assignments produced for that crew, returning a satisfaction
// value in [0,1].
package scorers

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// MinAdaptiveBoost and MaxAdaptiveBoost bound the externally supplied
// adaptive-boost factor before it enters the weighted contribution (§4.5).
const (
	MinAdaptiveBoost = 0.25
	MaxAdaptiveBoost = 4.0
)

// ClampAdaptiveBoost applies the §4.5 clamp, substituting 1.0 for a zero
// value so an unset boost behaves as a no-op multiplier.
func ClampAdaptiveBoost(boost float64) float64 {
	if boost == 0 {
		return 1.0
	}
	if boost < MinAdaptiveBoost {
		return MinAdaptiveBoost
	}
	if boost > MaxAdaptiveBoost {
		return MaxAdaptiveBoost
	}
	return boost
}

// Result is one scorer's output for one CrewPreference.
type Result struct {
	CrewID           uuid.UUID
	RolePreferenceID uuid.UUID
	Satisfaction     float64
	Met              bool
	WeightApplied    float64
	Applicable       bool

	// Reason explains a non-applicable result (Applicable == false); it is
	// carried into the persisted PreferenceSatisfaction row's Details field.
	Reason string
}

// Scorer is the signature every preference family implements.
type Scorer func(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, snap Context) Result

// Context carries the pieces of a Snapshot a scorer needs: role metadata and
// the store's break policy/shift lookup, without importing internal/validators
// (which would create an import cycle the other direction is not needed for).
type Context struct {
	RoleByID  map[uuid.UUID]domain.Role
	ShiftByID map[uuid.UUID]domain.Shift // keyed by crew id

	BreakWindowStart int
	BreakWindowEnd   int
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func weight(pref domain.RolePreference, cp domain.CrewPreference) float64 {
	return pref.BaseWeight * cp.CrewWeight * ClampAdaptiveBoost(cp.AdaptiveBoost)
}

func sortedByStart(assignments []domain.Assignment) []domain.Assignment {
	out := make([]domain.Assignment, len(assignments))
	copy(out, assignments)
	sort.Slice(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
	return out
}

// Score dispatches a CrewPreference to its family's scorer by
// pref.PreferenceType and returns the satisfaction result. assignments must
// already be filtered to the preference's crew.
func Score(pref domain.RolePreference, cp domain.CrewPreference, assignments []domain.Assignment, ctx Context) Result {
	switch pref.PreferenceType {
	case domain.PreferenceFirstHour:
		return FirstHour(pref, cp, assignments, ctx)
	case domain.PreferenceFavorite:
		return Favorite(pref, cp, assignments, ctx)
	case domain.PreferenceTiming:
		return Timing(pref, cp, assignments, ctx)
	case domain.PreferenceConsecutive:
		return Consecutive(pref, cp, assignments, ctx)
	default:
		return Result{CrewID: cp.CrewID, RolePreferenceID: cp.RolePreferenceID, Applicable: true}
	}
}
