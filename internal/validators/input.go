package validators

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// ValidateReferences checks the §7 InputValidationError precondition: every
// entity a Snapshot's constraints/shifts/crew-roles reference must exist,
// and every Role must satisfy its own §3 slot invariants. It runs before
// the solver is invoked; a non-empty result means no Logbook is created.
func ValidateReferences(snap Snapshot) []string {
	var problems []string

	crewIDs := make(map[string]struct{}, len(snap.Crews))
	for _, c := range snap.Crews {
		crewIDs[c.ID.String()] = struct{}{}
	}
	roles := snap.RoleByID()

	for _, r := range snap.Roles {
		if !r.Valid() {
			problems = append(problems, fmt.Sprintf("role %s has invalid slot bounds: min=%d max=%d block=%d", r.ID, r.MinSlots, r.MaxSlots, r.BlockSize))
		}
	}

	for _, s := range snap.Shifts {
		if _, ok := crewIDs[s.CrewID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("shift references unknown crew %s", s.CrewID))
		}
		if s.EndMin <= s.StartMin {
			problems = append(problems, fmt.Sprintf("shift for crew %s has endMin <= startMin", s.CrewID))
		}
	}

	for _, cr := range snap.CrewRoles {
		if _, ok := crewIDs[cr.CrewID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("crewRole references unknown crew %s", cr.CrewID))
		}
		if _, ok := roles[cr.RoleID]; !ok {
			problems = append(problems, fmt.Sprintf("crewRole references unknown role %s", cr.RoleID))
		}
	}

	for _, h := range snap.Hourly {
		if _, ok := roles[h.RoleID]; !ok {
			problems = append(problems, fmt.Sprintf("hourly constraint references unknown role %s", h.RoleID))
		}
	}
	for _, w := range snap.Window {
		if _, ok := roles[w.RoleID]; !ok {
			problems = append(problems, fmt.Sprintf("window constraint references unknown role %s", w.RoleID))
		}
		if w.EndHour <= w.StartHour {
			problems = append(problems, fmt.Sprintf("window constraint for role %s has endHour <= startHour", w.RoleID))
		}
	}
	for _, d := range snap.Daily {
		if _, ok := roles[d.RoleID]; !ok {
			problems = append(problems, fmt.Sprintf("daily constraint references unknown role %s", d.RoleID))
		}
		if _, ok := crewIDs[d.CrewID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("daily constraint references unknown crew %s", d.CrewID))
		}
	}

	return problems
}

// ValidatePreferenceConfiguration flags the §9 FAVORITE ambiguity: the
// dominant-role rule (§4.5.2) requires a crew's preferred role to account for
// at least half its non-break hours, so enabling FAVORITE on more than one
// role for the same crew makes every one of them unsatisfiable by
// construction. Rather than silently scoring all of them 0, this is rejected
// as a configuration error before the solver runs.
func ValidatePreferenceConfiguration(rolePreferences []domain.RolePreference, crewPreferences []domain.CrewPreference) []string {
	var problems []string

	rolePrefByID := make(map[uuid.UUID]domain.RolePreference, len(rolePreferences))
	for _, rp := range rolePreferences {
		rolePrefByID[rp.ID] = rp
	}

	favoriteRolesByCrew := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, cp := range crewPreferences {
		if !cp.Enabled {
			continue
		}
		rp, ok := rolePrefByID[cp.RolePreferenceID]
		if !ok || rp.PreferenceType != domain.PreferenceFavorite || rp.RoleID == nil {
			continue
		}
		if favoriteRolesByCrew[cp.CrewID] == nil {
			favoriteRolesByCrew[cp.CrewID] = make(map[uuid.UUID]struct{})
		}
		favoriteRolesByCrew[cp.CrewID][*rp.RoleID] = struct{}{}
	}

	for crewID, roles := range favoriteRolesByCrew {
		if len(roles) > 1 {
			problems = append(problems, fmt.Sprintf("crew %s has FAVORITE enabled on %d roles simultaneously; the dominant-role rule makes all of them unsatisfiable", crewID, len(roles)))
		}
	}

	return problems
}
