// Package eligibility builds, for each (role, hour-in-day) pair, the set of
// crew eligible to work that role during that hour (§4.3 of the
// specification).
package eligibility

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/segmentation"
)

type key struct {
	roleID uuid.UUID
	hour   int
}

// Index answers eligibility and window-discovery queries for one (store,
// date) snapshot.
type Index struct {
	byRoleHour map[key]map[uuid.UUID]struct{}
	roles      map[uuid.UUID]domain.Role
}

// Build indexes crews against roles, shifts, and qualifications. regStart and
// regEnd are the store's regular-hours window in minutes.
func Build(crews []domain.Crew, shifts []domain.Shift, crewRoles []domain.CrewRole, roles []domain.Role, regStart, regEnd int) *Index {
	idx := &Index{
		byRoleHour: make(map[key]map[uuid.UUID]struct{}),
		roles:      make(map[uuid.UUID]domain.Role, len(roles)),
	}
	for _, r := range roles {
		idx.roles[r.ID] = r
	}

	shiftByCrew := make(map[uuid.UUID]domain.Shift, len(shifts))
	for _, s := range shifts {
		shiftByCrew[s.CrewID] = s
	}

	qualified := make(map[uuid.UUID]map[uuid.UUID]struct{}) // roleID -> crewID set
	for _, cr := range crewRoles {
		if qualified[cr.RoleID] == nil {
			qualified[cr.RoleID] = make(map[uuid.UUID]struct{})
		}
		qualified[cr.RoleID][cr.CrewID] = struct{}{}
	}

	flexWindowByCrew := make(map[uuid.UUID]struct {
		start, end int
		ok         bool
	}, len(shiftByCrew))
	for crewID, shift := range shiftByCrew {
		segs, err := segmentation.Segments(shift.StartMin, shift.EndMin, regStart, regEnd)
		if err != nil {
			continue
		}
		start, end, ok := segmentation.FlexWindow(segs)
		flexWindowByCrew[crewID] = struct {
			start, end int
			ok         bool
		}{start, end, ok}
	}

	for _, role := range roles {
		for _, crew := range crews {
			shift, hasShift := shiftByCrew[crew.ID]
			if !hasShift {
				continue
			}
			_, isQualified := qualified[role.ID][crew.ID]
			if !isQualified && !role.IsUniversalFallback {
				continue
			}

			flex := flexWindowByCrew[crew.ID]
			for hour := shift.StartMin / 60; hour <= (shift.EndMin-1)/60; hour++ {
				hourStart, hourEnd := hour*60, (hour+1)*60
				if hourEnd <= shift.StartMin || hourStart >= shift.EndMin {
					continue
				}
				if !role.AllowOutsideStoreHours {
					// Only the crew's FLEX (inside store hours) segment
					// counts toward eligibility for a store-hours-only role.
					if !flex.ok || hourStart < flex.start || hourEnd > flex.end {
						continue
					}
				}
				idx.add(role.ID, hour, crew.ID)
			}
		}
	}

	return idx
}

func (idx *Index) add(roleID uuid.UUID, hour int, crewID uuid.UUID) {
	k := key{roleID: roleID, hour: hour}
	if idx.byRoleHour[k] == nil {
		idx.byRoleHour[k] = make(map[uuid.UUID]struct{})
	}
	idx.byRoleHour[k][crewID] = struct{}{}
}

// EligibleCrew returns the sorted (stable) list of crew eligible for role
// during hour.
func (idx *Index) EligibleCrew(roleID uuid.UUID, hour int) []uuid.UUID {
	set := idx.byRoleHour[key{roleID: roleID, hour: hour}]
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Count returns len(EligibleCrew(roleID, hour)) without allocating the slice.
func (idx *Index) Count(roleID uuid.UUID, hour int) int {
	return len(idx.byRoleHour[key{roleID: roleID, hour: hour}])
}

// window is an internal candidate result used by LongestWindow/BestWindow.
type window struct {
	start, end, minCrew, crewCount int
}

func (idx *Index) longestWindowFor(roleID uuid.UUID, minCrew int) (window, bool) {
	best := window{}
	found := false

	curStart := -1
	for hour := 0; hour < 24; hour++ {
		if idx.Count(roleID, hour) >= minCrew {
			if curStart == -1 {
				curStart = hour
			}
			continue
		}
		if curStart != -1 {
			if w, ok := candidateFromRun(curStart, hour, best, found); ok {
				best, found = w, true
			}
			curStart = -1
		}
	}
	if curStart != -1 {
		if w, ok := candidateFromRun(curStart, 24, best, found); ok {
			best, found = w, true
		}
	}
	if found {
		best.minCrew = minCrew
	}
	return best, found
}

func candidateFromRun(start, end int, best window, found bool) (window, bool) {
	w := window{start: start, end: end}
	if !found {
		return w, true
	}
	length := end - start
	bestLength := best.end - best.start
	if length > bestLength {
		return w, true
	}
	if length == bestLength && start < best.start {
		return w, true
	}
	return best, false
}

// LongestWindow returns the longest contiguous run of hours for which at
// least minCrew distinct crew are eligible for roleID, tie-breaking on
// earliest start (§4.3).
func (idx *Index) LongestWindow(roleID uuid.UUID, minCrew int) (start, end int, ok bool) {
	w, found := idx.longestWindowFor(roleID, minCrew)
	if !found {
		return 0, 0, false
	}
	return w.start, w.end, true
}

// BestWindow searches candidateMinCrews (tried in the given order) and
// returns the window that is longest; ties break on earliest start, then on
// the smallest required-crew count among the candidates tried.
func (idx *Index) BestWindow(roleID uuid.UUID, candidateMinCrews []int) (start, end, minCrew int, ok bool) {
	var best window
	found := false
	for _, n := range candidateMinCrews {
		start, end, ok := idx.LongestWindow(roleID, n)
		if !ok {
			continue
		}
		w := window{start: start, end: end, minCrew: n}
		if !found {
			best, found = w, true
			continue
		}
		length := w.end - w.start
		bestLength := best.end - best.start
		switch {
		case length > bestLength:
			best = w
		case length == bestLength && w.start < best.start:
			best = w
		case length == bestLength && w.start == best.start && w.minCrew < best.minCrew:
			best = w
		}
	}
	if !found {
		return 0, 0, 0, false
	}
	return best.start, best.end, best.minCrew, true
}
