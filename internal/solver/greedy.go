package solver

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/pkg/database"
)

// WindowCache lets a GreedyBackend skip recomputing the §4.3 longest-window
// search for a (store, date, role, minCrew) it has already solved;
// *pkg/database.EligibilityCache implements this against Redis.
type WindowCache interface {
	Get(ctx context.Context, storeID uuid.UUID, date string, roleID uuid.UUID, minCrew int) (database.WindowResult, bool, error)
	Set(ctx context.Context, storeID uuid.UUID, date string, roleID uuid.UUID, minCrew int, result database.WindowResult) error
}

// GreedyBackend is the deterministic default Backend (§4.6 "Determinism"):
// it places coverage requirements hour by hour, always preferring the
// earliest feasible start and the lexicographically smallest crew id among
// ties, so repeated invocations on the same input and seed produce the same
// assignment set modulo permutation.
//
// Windows is optional; when set, GreedyBackend consults it before running
// the eligibility index's longest-window search to auto-place coverage for
// HOURLY_WINDOW roles that were given no explicit requirement (§4.3).
type GreedyBackend struct {
	Windows WindowCache
}

type occupiedInterval struct{ start, end int }

type greedyState struct {
	input       InputDocument
	roleByID    map[uuid.UUID]domain.Role
	crewByID    map[uuid.UUID]InputCrew
	occupied    map[uuid.UUID][]occupiedInterval
	assignments []OutputAssignment

	// firstHour indexes the FIRST_HOUR preferences (§4.5.1) that influence
	// which otherwise-equal candidate placeHourly prefers (§8 scenario 4).
	firstHour map[uuid.UUID]firstHourWant
}

// Invoke runs the greedy placement. It never returns an error itself; when a
// coverage, daily or break requirement cannot be placed it returns the
// partial assignment set with Status set to RunInfeasible.
func (gb GreedyBackend) Invoke(ctx context.Context, input InputDocument) (OutputDocument, error) {
	start := time.Now()

	st := &greedyState{
		input:     input,
		roleByID:  make(map[uuid.UUID]domain.Role, len(input.Roles)),
		crewByID:  make(map[uuid.UUID]InputCrew, len(input.Crew)),
		occupied:  make(map[uuid.UUID][]occupiedInterval),
		firstHour: firstHourWants(input.Preferences),
	}
	for _, r := range input.Roles {
		st.roleByID[r.ID] = r
	}
	for _, c := range input.Crew {
		st.crewByID[c.ID] = c
	}

	status := domain.RunOptimal

	for _, h := range sortedHourly(input.HourlyRequirements) {
		if ctxDone(ctx) {
			return timeoutOutput(start, input, st.assignments, len(input.Crew)), nil
		}
		if !st.placeHourly(h.Date, h.Hour, h.RoleID, h.RequiredPerHour) {
			status = domain.RunInfeasible
		}
	}

	for _, w := range sortedWindow(input.WindowRequirements) {
		for hour := w.StartHour; hour < w.EndHour; hour++ {
			if ctxDone(ctx) {
				return timeoutOutput(start, input, st.assignments, len(input.Crew)), nil
			}
			if !st.placeHourly(w.Date, hour, w.RoleID, w.RequiredPerHour) {
				status = domain.RunInfeasible
			}
		}
	}

	if !st.placeAutoWindows(ctx, gb.Windows, constrainedRoles(input)) {
		status = domain.RunInfeasible
	}

	st.mergeAdjacentAssignments()

	for _, d := range sortedDaily(input.DailyRequirements) {
		if ctxDone(ctx) {
			return timeoutOutput(start, input, st.assignments, len(input.Crew)), nil
		}
		if !st.placeDaily(d.CrewID, d.RoleID, d.RequiredHours) {
			status = domain.RunInfeasible
		}
	}

	if !st.placeBreaks() {
		status = domain.RunInfeasible
	}

	sortAssignments(st.assignments)

	return OutputDocument{
		Metadata: OutputMetadata{
			Status:         status,
			ObjectiveScore: objectiveScore(input, st.assignments),
			RuntimeMs:      time.Since(start).Milliseconds(),
			NumCrew:        len(input.Crew),
			NumAssignments: len(st.assignments),
		},
		Assignments: st.assignments,
	}, nil
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func timeoutOutput(start time.Time, input InputDocument, assignments []OutputAssignment, numCrew int) OutputDocument {
	sortAssignments(assignments)
	return OutputDocument{
		Metadata: OutputMetadata{
			Status:         domain.RunTimeout,
			ObjectiveScore: objectiveScore(input, assignments),
			RuntimeMs:      time.Since(start).Milliseconds(),
			NumCrew:        numCrew,
			NumAssignments: len(assignments),
		},
		Assignments: assignments,
	}
}

// placeHourly assigns requiredPerHour distinct crew to roleID covering
// [hour*60, (hour+1)*60), preferring a crew whose FIRST_HOUR preference this
// placement would satisfy (§8 scenario 4), then the shortest feasible
// duration among the rest sorted by id. Returns false if fewer than
// requiredPerHour could be placed.
func (st *greedyState) placeHourly(date string, hour int, roleID uuid.UUID, required int) bool {
	role, ok := st.roleByID[roleID]
	if !ok {
		return false
	}
	slotMin := st.input.Store.BaseSlotMinutes
	if slotMin <= 0 {
		slotMin = 30
	}
	hourStart, hourEnd := hour*60, (hour+1)*60

	candidates := st.prioritizeForHour(st.eligibleCrewSorted(roleID, hour), hour, roleID)
	placed := 0
	for _, crewID := range candidates {
		if placed >= required {
			break
		}
		crew := st.crewByID[crewID]
		durationMin := coverageDuration(role, slotMin, hourEnd-hourStart)

		assignStart := hourStart
		assignEnd := assignStart + durationMin
		if assignEnd > crew.ShiftEndMin {
			assignEnd = crew.ShiftEndMin
			assignStart = assignEnd - durationMin
		}
		if assignStart < crew.ShiftStartMin {
			assignStart = crew.ShiftStartMin
			assignEnd = assignStart + durationMin
		}
		if assignStart > hourStart || assignEnd < hourEnd {
			continue // cannot fit a coverage-satisfying block in this crew's shift
		}
		if !role.AllowOutsideStoreHours && (assignStart < st.input.Store.RegHoursStart || assignEnd > st.input.Store.RegHoursEnd) {
			continue
		}
		if st.overlaps(crewID, assignStart, assignEnd) {
			continue
		}

		st.reserve(crewID, assignStart, assignEnd)
		st.assignments = append(st.assignments, OutputAssignment{
			CrewID: crewID, RoleID: roleID, StartTime: assignStart, EndTime: assignEnd,
		})
		placed++
	}

	return placed >= required
}

// placeDaily places exactly requiredHours of roleID for crewID, starting as
// early as the crew's shift and the role's block size allow.
func (st *greedyState) placeDaily(crewID, roleID uuid.UUID, requiredHours float64) bool {
	role, ok := st.roleByID[roleID]
	if !ok {
		return false
	}
	crew, ok := st.crewByID[crewID]
	if !ok {
		return false
	}
	slotMin := st.input.Store.BaseSlotMinutes
	if slotMin <= 0 {
		slotMin = 30
	}
	durationMin := int(requiredHours * 60)

	assignStart := crew.ShiftStartMin
	assignEnd := assignStart + durationMin
	if !role.AllowOutsideStoreHours {
		if assignStart < st.input.Store.RegHoursStart {
			assignStart = st.input.Store.RegHoursStart
			assignEnd = assignStart + durationMin
		}
	}
	if assignEnd > crew.ShiftEndMin {
		return false
	}
	if !role.AllowOutsideStoreHours && assignEnd > st.input.Store.RegHoursEnd {
		return false
	}
	if st.overlaps(crewID, assignStart, assignEnd) {
		return false
	}

	st.reserve(crewID, assignStart, assignEnd)
	st.assignments = append(st.assignments, OutputAssignment{
		CrewID: crewID, RoleID: roleID, StartTime: assignStart, EndTime: assignEnd,
	})
	return true
}

// placeBreaks finds, for every crew whose shift length meets or exceeds the
// store's break threshold, one break-role assignment inside the configured
// offset window (§4.4.8). Returns false if any required break could not be
// placed.
func (st *greedyState) placeBreaks() bool {
	policy := st.input.Store.BreakPolicy
	breakRole, ok := st.breakRole()
	if !ok {
		return true // no break role configured: nothing for this solver to place
	}
	slotMin := st.input.Store.BaseSlotMinutes
	if slotMin <= 0 {
		slotMin = 30
	}
	durationMin := breakRole.MinSlots * slotMin

	allOK := true
	for _, crewID := range sortedCrewIDs(st.input.Crew) {
		crew := st.crewByID[crewID]
		shiftLen := crew.ShiftEndMin - crew.ShiftStartMin
		if shiftLen < policy.ReqShiftLengthForBreak {
			continue
		}
		if !crewEligibleFor(crew, breakRole) {
			allOK = false
			continue
		}

		placed := false
		for offset := policy.BreakWindowStart; offset <= policy.BreakWindowEnd; offset += slotMin {
			assignStart := crew.ShiftStartMin + offset
			assignEnd := assignStart + durationMin
			if assignEnd > crew.ShiftEndMin {
				break
			}
			if st.overlaps(crewID, assignStart, assignEnd) {
				continue
			}
			st.reserve(crewID, assignStart, assignEnd)
			st.assignments = append(st.assignments, OutputAssignment{
				CrewID: crewID, RoleID: breakRole.ID, StartTime: assignStart, EndTime: assignEnd,
			})
			placed = true
			break
		}
		if !placed {
			allOK = false
		}
	}
	return allOK
}

func (st *greedyState) breakRole() (domain.Role, bool) {
	for _, r := range st.input.Roles {
		if r.IsBreakRole {
			return r, true
		}
	}
	return domain.Role{}, false
}

func crewEligibleFor(crew InputCrew, role domain.Role) bool {
	if role.IsUniversalFallback {
		return true
	}
	for _, r := range crew.EligibleRoles {
		if r == role.ID {
			return true
		}
	}
	return false
}

func sortedCrewIDs(crew []InputCrew) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(crew))
	for _, c := range crew {
		out = append(out, c.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func coverageDuration(role domain.Role, slotMin, hourWidthMin int) int {
	hourSlots := hourWidthMin / slotMin
	if hourSlots < 1 {
		hourSlots = 1
	}
	slots := role.MinSlots
	if slots < hourSlots {
		slots = hourSlots
	}
	block := role.BlockSize
	if block < 1 {
		block = 1
	}
	if slots%block != 0 {
		slots += block - (slots % block)
	}
	if role.MaxSlots > 0 && slots > role.MaxSlots {
		slots = role.MaxSlots
	}
	return slots * slotMin
}

// eligibleCrewSorted returns the crew eligible for roleID during hour. When
// the input document carries a §4.3 eligibility index (built by BuildInput),
// it is authoritative and already accounts for each crew's FLEX/FIXED
// segmentation; hand-built InputDocuments without one fall back to static
// CrewRole membership.
func (st *greedyState) eligibleCrewSorted(roleID uuid.UUID, hour int) []uuid.UUID {
	if st.input.EligibilityIndex != nil {
		return st.input.EligibilityIndex.EligibleCrew(roleID, hour)
	}

	var out []uuid.UUID
	for _, c := range st.input.Crew {
		for _, r := range c.EligibleRoles {
			if r == roleID {
				out = append(out, c.ID)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (st *greedyState) overlaps(crewID uuid.UUID, start, end int) bool {
	for _, iv := range st.occupied[crewID] {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}

func (st *greedyState) reserve(crewID uuid.UUID, start, end int) {
	st.occupied[crewID] = append(st.occupied[crewID], occupiedInterval{start: start, end: end})
}

// mergeAdjacentAssignments merges same (crew, role) assignments that abut,
// so window-coverage placements collapse into one span instead of one
// assignment per hour (§8 scenario 6).
func (st *greedyState) mergeAdjacentAssignments() {
	sortAssignments(st.assignments)
	var merged []OutputAssignment
	for _, a := range st.assignments {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.CrewID == a.CrewID && last.RoleID == a.RoleID && last.EndTime == a.StartTime {
				last.EndTime = a.EndTime
				continue
			}
		}
		merged = append(merged, a)
	}
	st.assignments = merged
}

func sortAssignments(assignments []OutputAssignment) {
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.CrewID != b.CrewID {
			return a.CrewID.String() < b.CrewID.String()
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.RoleID.String() < b.RoleID.String()
	})
}

func sortedHourly(in []domain.HourlyRoleConstraint) []domain.HourlyRoleConstraint {
	out := append([]domain.HourlyRoleConstraint(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].RoleID.String() < out[j].RoleID.String()
	})
	return out
}

func sortedWindow(in []domain.WindowRoleConstraint) []domain.WindowRoleConstraint {
	out := append([]domain.WindowRoleConstraint(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartHour != out[j].StartHour {
			return out[i].StartHour < out[j].StartHour
		}
		return out[i].RoleID.String() < out[j].RoleID.String()
	})
	return out
}

func sortedDaily(in []domain.DailyRoleConstraint) []domain.DailyRoleConstraint {
	out := append([]domain.DailyRoleConstraint(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CrewID != out[j].CrewID {
			return out[i].CrewID.String() < out[j].CrewID.String()
		}
		return out[i].RoleID.String() < out[j].RoleID.String()
	})
	return out
}
