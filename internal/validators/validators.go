package validators

import "github.com/pageza/logbook-engine/internal/domain"

// Validator is the signature every hard-constraint family implements.
type Validator func(assignments []domain.Assignment, snap Snapshot) []Violation

// All lists the ten validator families of §4.4, in the order they are
// defined there.
var All = []Validator{
	SlotAlignment,
	StoreHoursConfinement,
	RoleSlotDuration,
	Consecutive,
	HourlyCoverage,
	WindowCoverage,
	DailyHours,
	BreakPolicy,
	Availability,
	Qualification,
}

// RunAll runs every validator family and concatenates their violations. A
// non-empty result means the candidate assignment set is infeasible (§4.4).
func RunAll(assignments []domain.Assignment, snap Snapshot) []Violation {
	var all []Violation
	for _, v := range All {
		all = append(all, v(assignments, snap)...)
	}
	return all
}
