package validators

import (
	"fmt"

	"github.com/pageza/logbook-engine/internal/domain"
)

// BreakPolicy checks §4.4.8: if shiftLen >= reqShiftLengthForBreak, the crew
// must have exactly one break-role assignment whose offset from shift start
// falls in [breakWindowStart, breakWindowEnd]; otherwise the crew must have
// none.
func BreakPolicy(assignments []domain.Assignment, snap Snapshot) []Violation {
	breakRoleIDs := make(map[string]bool)
	for _, r := range snap.Roles {
		if r.IsBreakRole {
			breakRoleIDs[r.ID.String()] = true
		}
	}

	byCrew := ByCrew(assignments)
	policy := snap.Store.BreakPolicy
	var violations []Violation

	for _, shift := range snap.Shifts {
		shiftLen := shift.EndMin - shift.StartMin
		var breakAssignments []domain.Assignment
		for _, a := range byCrew[shift.CrewID] {
			if breakRoleIDs[a.RoleID.String()] {
				breakAssignments = append(breakAssignments, a)
			}
		}

		requiresBreak := shiftLen >= policy.ReqShiftLengthForBreak

		if requiresBreak {
			if len(breakAssignments) != 1 {
				violations = append(violations, Violation{
					Family: FamilyBreakPolicy,
					Message: fmt.Sprintf("crew %s shift length %d requires exactly one break assignment, found %d",
						shift.CrewID, shiftLen, len(breakAssignments)),
					CrewID: crewRef(shift.CrewID),
				})
				continue
			}
			brk := breakAssignments[0]
			offset := brk.StartMin - shift.StartMin
			if offset < policy.BreakWindowStart || offset > policy.BreakWindowEnd {
				violations = append(violations, Violation{
					Family: FamilyBreakPolicy,
					Message: fmt.Sprintf("crew %s break offset %d outside window [%d,%d]",
						shift.CrewID, offset, policy.BreakWindowStart, policy.BreakWindowEnd),
					CrewID: crewRef(shift.CrewID),
					RoleID: roleRef(brk.RoleID),
				})
			}
		} else if len(breakAssignments) > 0 {
			violations = append(violations, Violation{
				Family: FamilyBreakPolicy,
				Message: fmt.Sprintf("crew %s shift length %d is below break threshold %d but has a break assignment",
					shift.CrewID, shiftLen, policy.ReqShiftLengthForBreak),
				CrewID: crewRef(shift.CrewID),
			})
		}
	}

	return violations
}
