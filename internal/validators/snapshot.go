// Package validators implements the ten hard-constraint families of §4.4.
// Every validator is a pure function over a candidate assignment set and a
// Snapshot, returning a list of Violation.
package validators

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Snapshot is the immutable input every validator reads by shared reference
// (§9 "Ownership").
type Snapshot struct {
	Store     domain.Store
	Crews     []domain.Crew
	Shifts    []domain.Shift
	Roles     []domain.Role
	CrewRoles []domain.CrewRole
	Hourly    []domain.HourlyRoleConstraint
	Window    []domain.WindowRoleConstraint
	Daily     []domain.DailyRoleConstraint
}

// RoleByID indexes Roles by id.
func (s Snapshot) RoleByID() map[uuid.UUID]domain.Role {
	out := make(map[uuid.UUID]domain.Role, len(s.Roles))
	for _, r := range s.Roles {
		out[r.ID] = r
	}
	return out
}

// ShiftByCrew indexes Shifts by crew id.
func (s Snapshot) ShiftByCrew() map[uuid.UUID]domain.Shift {
	out := make(map[uuid.UUID]domain.Shift, len(s.Shifts))
	for _, sh := range s.Shifts {
		out[sh.CrewID] = sh
	}
	return out
}

// Qualified indexes CrewRoles by (roleID -> set of crewID).
func (s Snapshot) Qualified() map[uuid.UUID]map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, cr := range s.CrewRoles {
		if out[cr.RoleID] == nil {
			out[cr.RoleID] = make(map[uuid.UUID]struct{})
		}
		out[cr.RoleID][cr.CrewID] = struct{}{}
	}
	return out
}

// ByCrew groups assignments by crew id, each group sorted by StartMin.
func ByCrew(assignments []domain.Assignment) map[uuid.UUID][]domain.Assignment {
	out := make(map[uuid.UUID][]domain.Assignment)
	for _, a := range assignments {
		out[a.CrewID] = append(out[a.CrewID], a)
	}
	for crewID := range out {
		group := out[crewID]
		sort.Slice(group, func(i, j int) bool { return group[i].StartMin < group[j].StartMin })
		out[crewID] = group
	}
	return out
}

// ByCrewRole groups assignments by (crew, role).
func ByCrewRole(assignments []domain.Assignment) map[[2]uuid.UUID][]domain.Assignment {
	out := make(map[[2]uuid.UUID][]domain.Assignment)
	for _, a := range assignments {
		k := [2]uuid.UUID{a.CrewID, a.RoleID}
		out[k] = append(out[k], a)
	}
	for k := range out {
		group := out[k]
		sort.Slice(group, func(i, j int) bool { return group[i].StartMin < group[j].StartMin })
		out[k] = group
	}
	return out
}

// coversHour reports whether [startMin, endMin) covers the full hour h.
func coversHour(startMin, endMin, h int) bool {
	return startMin <= h*60 && endMin >= (h+1)*60
}
