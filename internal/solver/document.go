// Package solver implements the §4.6 solver driver: it builds an input
// document from the domain snapshot, invokes a pluggable Backend, then
// re-validates and sorts the backend's output before it is handed to the
// persister.
package solver

import (
	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/eligibility"
)

// InputCrew is one crew entry in an InputDocument (§6).
type InputCrew struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	ShiftStartMin int         `json:"shiftStartMin"`
	ShiftEndMin   int         `json:"shiftEndMin"`
	EligibleRoles []uuid.UUID `json:"eligibleRoles"`
}

// InputPreference is one effective (post adaptive-boost, post banking)
// preference entry in an InputDocument.
type InputPreference struct {
	ID         uuid.UUID  `json:"id"`
	CrewID     uuid.UUID  `json:"crewId"`
	Type       domain.PreferenceType `json:"type"`
	RoleID     *uuid.UUID `json:"roleId,omitempty"`
	BaseWeight float64    `json:"baseWeight"`
	CrewWeight float64    `json:"crewWeight"`
	IntValue   *int       `json:"intValue,omitempty"`
}

// InputStore carries the store fields a backend needs to place both
// coverage and break assignments.
type InputStore struct {
	ID              uuid.UUID         `json:"id"`
	RegHoursStart   int               `json:"regHoursStart"`
	RegHoursEnd     int               `json:"regHoursEnd"`
	BaseSlotMinutes int               `json:"baseSlotMinutes"`
	BreakPolicy     domain.BreakPolicy `json:"breakPolicy"`
}

// InputDocument is the pure-data solver input of §6.
type InputDocument struct {
	Date              string                        `json:"date"`
	Store             InputStore                    `json:"store"`
	Crew              []InputCrew                    `json:"crew"`
	Roles             []domain.Role                  `json:"roles"`
	HourlyRequirements []domain.HourlyRoleConstraint `json:"hourlyRequirements"`
	WindowRequirements []domain.WindowRoleConstraint `json:"windowRequirements"`
	DailyRequirements  []domain.DailyRoleConstraint  `json:"dailyRequirements"`
	Preferences        []InputPreference             `json:"preferences"`
	TimeLimitSeconds   int                            `json:"timeLimitSeconds"`
	Seed               int64                          `json:"seed"`

	// EligibilityIndex is the §4.3 per-(role,hour) eligible-crew index built
	// by BuildInput. Hand-built InputDocuments (as in unit tests) may leave
	// it nil; GreedyBackend falls back to static CrewRole membership then.
	EligibilityIndex *eligibility.Index `json:"-"`
}

// OutputAssignment is one assignment entry in an OutputDocument (§6); times
// are minutes-from-midnight.
type OutputAssignment struct {
	CrewID    uuid.UUID `json:"crewId"`
	RoleID    uuid.UUID `json:"roleCode"`
	StartTime int       `json:"startTime"`
	EndTime   int       `json:"endTime"`
}

// OutputMetadata is the §6 solver output metadata block.
type OutputMetadata struct {
	Status          domain.RunStatus `json:"status"`
	ObjectiveScore  float64          `json:"objectiveScore,omitempty"`
	MipGap          *float64         `json:"mipGap,omitempty"`
	RuntimeMs       int64            `json:"runtimeMs"`
	NumCrew         int              `json:"numCrew"`
	NumAssignments  int              `json:"numAssignments"`
	Violations      []string         `json:"violations,omitempty"`
}

// OutputDocument is the pure-data solver output of §6.
type OutputDocument struct {
	Metadata    OutputMetadata     `json:"metadata"`
	Assignments []OutputAssignment `json:"assignments"`
}

// ToAssignments converts the output document's assignment entries into
// domain.Assignment rows bound to logbookID.
func (o OutputDocument) ToAssignments(logbookID uuid.UUID) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(o.Assignments))
	for _, a := range o.Assignments {
		out = append(out, domain.Assignment{
			LogbookID: logbookID,
			CrewID:    a.CrewID,
			RoleID:    a.RoleID,
			StartMin:  a.StartTime,
			EndMin:    a.EndTime,
		})
	}
	return out
}
