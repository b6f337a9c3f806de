package solver

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/scorers"
)

// firstHourWant is the one FIRST_HOUR preference (highest effective weight,
// if a crew somehow carries more than one) the greedy placer will try to
// satisfy when ordering candidates for an hourly requirement (§8 scenario 4:
// "FIRST_HOUR preference win").
type firstHourWant struct {
	hour   *int
	roleID *uuid.UUID
	weight float64
}

// satisfiedBy reports whether placing this crew on roleID at hour would
// satisfy the want, mirroring scorers.FirstHour's own target resolution
// (IntValue target hour takes precedence over RoleID).
func (w firstHourWant) satisfiedBy(hour int, roleID uuid.UUID) bool {
	if w.hour != nil {
		return *w.hour == hour
	}
	if w.roleID != nil {
		return *w.roleID == roleID
	}
	return false
}

// firstHourWants indexes input.Preferences by crew, keeping only the
// highest-weight enabled FIRST_HOUR entry per crew.
func firstHourWants(preferences []InputPreference) map[uuid.UUID]firstHourWant {
	out := make(map[uuid.UUID]firstHourWant)
	for _, p := range preferences {
		if p.Type != domain.PreferenceFirstHour {
			continue
		}
		w := p.BaseWeight * p.CrewWeight
		if cur, ok := out[p.CrewID]; ok && cur.weight >= w {
			continue
		}
		out[p.CrewID] = firstHourWant{hour: p.IntValue, roleID: p.RoleID, weight: w}
	}
	return out
}

// prioritizeForHour reorders candidates so a crew whose FIRST_HOUR want this
// placement would satisfy (and who has nothing placed yet, since FIRST_HOUR
// only cares about the crew's earliest assignment) is tried before the rest;
// ties still break on crew id, preserving determinism.
func (st *greedyState) prioritizeForHour(candidates []uuid.UUID, hour int, roleID uuid.UUID) []uuid.UUID {
	if len(st.firstHour) == 0 {
		return candidates
	}

	type scored struct {
		id       uuid.UUID
		priority float64
	}
	scoredList := make([]scored, len(candidates))
	for i, id := range candidates {
		priority := 0.0
		if want, ok := st.firstHour[id]; ok && len(st.occupied[id]) == 0 && want.satisfiedBy(hour, roleID) {
			priority = want.weight
		}
		scoredList[i] = scored{id: id, priority: priority}
	}
	sort.SliceStable(scoredList, func(i, j int) bool {
		if scoredList[i].priority != scoredList[j].priority {
			return scoredList[i].priority > scoredList[j].priority
		}
		return scoredList[i].id.String() < scoredList[j].id.String()
	})

	out := make([]uuid.UUID, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.id
	}
	return out
}

// objectiveScore computes the §4.5 weighted objective — Σ weight(p)·s(p) —
// over the assignments the backend actually placed, reusing the same
// per-family scorers the persister later runs so the solver's own audited
// objective and the persisted satisfaction rows never disagree.
func objectiveScore(input InputDocument, assignments []OutputAssignment) float64 {
	if len(input.Preferences) == 0 {
		return 0
	}

	roleByID := make(map[uuid.UUID]domain.Role, len(input.Roles))
	for _, r := range input.Roles {
		roleByID[r.ID] = r
	}
	shiftByID := make(map[uuid.UUID]domain.Shift, len(input.Crew))
	for _, c := range input.Crew {
		shiftByID[c.ID] = domain.Shift{CrewID: c.ID, Date: input.Date, StartMin: c.ShiftStartMin, EndMin: c.ShiftEndMin}
	}
	ctx := scorers.Context{
		RoleByID:         roleByID,
		ShiftByID:        shiftByID,
		BreakWindowStart: input.Store.BreakPolicy.BreakWindowStart,
		BreakWindowEnd:   input.Store.BreakPolicy.BreakWindowEnd,
	}

	assignmentsByCrew := make(map[uuid.UUID][]domain.Assignment)
	for _, a := range assignments {
		assignmentsByCrew[a.CrewID] = append(assignmentsByCrew[a.CrewID], domain.Assignment{
			CrewID: a.CrewID, RoleID: a.RoleID, StartMin: a.StartTime, EndMin: a.EndTime,
		})
	}

	var total float64
	for _, p := range input.Preferences {
		rolePref := domain.RolePreference{ID: p.ID, RoleID: p.RoleID, PreferenceType: p.Type, BaseWeight: p.BaseWeight}
		crewPref := domain.CrewPreference{CrewID: p.CrewID, RolePreferenceID: p.ID, Enabled: true, CrewWeight: p.CrewWeight, IntValue: p.IntValue}
		res := scorers.Score(rolePref, crewPref, assignmentsByCrew[p.CrewID], ctx)
		if !res.Applicable {
			continue
		}
		total += p.BaseWeight * p.CrewWeight * res.Satisfaction
	}
	return total
}
