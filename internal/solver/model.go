package solver

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/eligibility"
)

// BuildInput assembles the §6 input document from the (store, date) inputs
// read at the start of a run. crewRoles supplies each crew's eligibleRoles
// list; preferences are expected to already carry effective (post
// adaptive-boost, post banking) weights.
func BuildInput(
	date string,
	store domain.Store,
	crews []domain.Crew,
	shifts []domain.Shift,
	roles []domain.Role,
	crewRoles []domain.CrewRole,
	hourly []domain.HourlyRoleConstraint,
	window []domain.WindowRoleConstraint,
	daily []domain.DailyRoleConstraint,
	preferences []InputPreference,
	timeLimitSeconds int,
	seed int64,
) InputDocument {
	shiftByCrew := make(map[uuid.UUID]domain.Shift, len(shifts))
	for _, s := range shifts {
		shiftByCrew[s.CrewID] = s
	}

	rolesByCrew := make(map[uuid.UUID][]uuid.UUID)
	for _, cr := range crewRoles {
		rolesByCrew[cr.CrewID] = append(rolesByCrew[cr.CrewID], cr.RoleID)
	}

	inputCrew := make([]InputCrew, 0, len(crews))
	for _, c := range crews {
		shift, ok := shiftByCrew[c.ID]
		if !ok {
			continue
		}
		eligibleRoles := append([]uuid.UUID(nil), rolesByCrew[c.ID]...)
		sort.Slice(eligibleRoles, func(i, j int) bool { return eligibleRoles[i].String() < eligibleRoles[j].String() })
		inputCrew = append(inputCrew, InputCrew{
			ID:            c.ID,
			Name:          c.Name,
			ShiftStartMin: shift.StartMin,
			ShiftEndMin:   shift.EndMin,
			EligibleRoles: eligibleRoles,
		})
	}
	sort.Slice(inputCrew, func(i, j int) bool { return inputCrew[i].ID.String() < inputCrew[j].ID.String() })

	return InputDocument{
		Date: date,
		Store: InputStore{
			ID:              store.ID,
			RegHoursStart:   store.RegHoursStart,
			RegHoursEnd:     store.RegHoursEnd,
			BaseSlotMinutes: store.BaseSlotMinutes,
			BreakPolicy:     store.BreakPolicy,
		},
		Crew:               inputCrew,
		Roles:              roles,
		HourlyRequirements: hourly,
		WindowRequirements: window,
		DailyRequirements:  daily,
		Preferences:        preferences,
		TimeLimitSeconds:   timeLimitSeconds,
		Seed:               seed,
		EligibilityIndex:   eligibility.Build(crews, shifts, crewRoles, roles, store.RegHoursStart, store.RegHoursEnd),
	}
}
