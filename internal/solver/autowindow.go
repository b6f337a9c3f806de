package solver

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/pkg/database"
)

// constrainedRoles returns the set of role ids that already have an explicit
// HourlyRoleConstraint or WindowRoleConstraint, so placeAutoWindows knows
// which HOURLY_WINDOW roles were left unconstrained.
func constrainedRoles(input InputDocument) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(input.HourlyRequirements)+len(input.WindowRequirements))
	for _, h := range input.HourlyRequirements {
		out[h.RoleID] = true
	}
	for _, w := range input.WindowRequirements {
		out[w.RoleID] = true
	}
	return out
}

// autoWindowCandidates is the descending minCrew count tried by
// placeAutoWindows's call to BestWindow, in the absence of an explicit
// requirement naming how many crew a window needs.
var autoWindowCandidates = []int{2, 1}

// placeAutoWindows pre-places coverage for HOURLY_WINDOW roles that were
// given no explicit requirement (§4.3: "used by the solver to pre-place
// HOURLY_WINDOW coverages when no constraint was supplied"). It asks the
// eligibility index for the longest contiguous run of hours with at least
// one of autoWindowCandidates' crew counts available, optionally checking
// windows first, and places one-per-hour coverage across the winning
// window. Roles already covered by an explicit requirement, and roles
// with no eligibility index (hand-built InputDocuments in unit tests), are
// left untouched.
func (st *greedyState) placeAutoWindows(ctx context.Context, cache WindowCache, constrained map[uuid.UUID]bool) bool {
	if st.input.EligibilityIndex == nil {
		return true
	}

	ok := true
	for _, role := range sortedWindowRoles(st.input.Roles) {
		if role.AssignmentModel != domain.AssignmentHourlyWindow || constrained[role.ID] {
			continue
		}

		result, found := st.bestWindow(ctx, cache, role.ID)
		if !found {
			continue
		}
		for hour := result.Start; hour < result.End; hour++ {
			if ctxDone(ctx) {
				return ok
			}
			if !st.placeHourly(st.input.Date, hour, role.ID, result.MinCrew) {
				ok = false
			}
		}
	}
	return ok
}

// bestWindow consults cache (if any) before falling back to the
// eligibility index's own search, and populates the cache on a miss.
func (st *greedyState) bestWindow(ctx context.Context, cache WindowCache, roleID uuid.UUID) (database.WindowResult, bool) {
	if cache != nil {
		if cached, hit, err := cache.Get(ctx, st.input.Store.ID, st.input.Date, roleID, autoWindowCandidates[len(autoWindowCandidates)-1]); err == nil && hit {
			return cached, cached.Found
		}
	}

	start, end, minCrew, found := st.input.EligibilityIndex.BestWindow(roleID, autoWindowCandidates)
	result := database.WindowResult{Start: start, End: end, MinCrew: minCrew, Found: found}
	if cache != nil {
		_ = cache.Set(ctx, st.input.Store.ID, st.input.Date, roleID, autoWindowCandidates[len(autoWindowCandidates)-1], result)
	}
	return result, found
}

func sortedWindowRoles(roles []domain.Role) []domain.Role {
	out := append([]domain.Role(nil), roles...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}
