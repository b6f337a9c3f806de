package scorers_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/scorers"
)

func TestClampAdaptiveBoost(t *testing.T) {
	assert.Equal(t, 1.0, scorers.ClampAdaptiveBoost(0))
	assert.Equal(t, scorers.MinAdaptiveBoost, scorers.ClampAdaptiveBoost(0.01))
	assert.Equal(t, scorers.MaxAdaptiveBoost, scorers.ClampAdaptiveBoost(10))
	assert.Equal(t, 2.0, scorers.ClampAdaptiveBoost(2))
}

func TestFirstHourByTargetHour(t *testing.T) {
	roleID := uuid.New()
	crewID := uuid.New()
	hour := 9
	pref := domain.RolePreference{PreferenceType: domain.PreferenceFirstHour, BaseWeight: 1}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1, IntValue: &hour}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: roleID, StartMin: 540, EndMin: 600},
	}
	res := scorers.FirstHour(pref, cp, assignments, scorers.Context{})
	assert.Equal(t, 1.0, res.Satisfaction)
	assert.True(t, res.Met)
}

func TestFirstHourByRole(t *testing.T) {
	roleID := uuid.New()
	crewID := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceFirstHour, BaseWeight: 1, RoleID: &roleID}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: roleID, StartMin: 540, EndMin: 600},
	}
	res := scorers.FirstHour(pref, cp, assignments, scorers.Context{})
	assert.Equal(t, 1.0, res.Satisfaction)
}

func TestFavoriteDominantRole(t *testing.T) {
	preferredRole := uuid.New()
	otherRole := uuid.New()
	crewID := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceFavorite, BaseWeight: 1, RoleID: &preferredRole}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}
	ctx := scorers.Context{RoleByID: map[uuid.UUID]domain.Role{
		preferredRole: {ID: preferredRole},
		otherRole:     {ID: otherRole},
	}}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: preferredRole, StartMin: 480, EndMin: 600},
		{CrewID: crewID, RoleID: otherRole, StartMin: 600, EndMin: 660},
	}
	res := scorers.Favorite(pref, cp, assignments, ctx)
	assert.Equal(t, 1.0, res.Satisfaction)
}

func TestFavoriteNotDominant(t *testing.T) {
	preferredRole := uuid.New()
	otherRole := uuid.New()
	crewID := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceFavorite, BaseWeight: 1, RoleID: &preferredRole}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}
	ctx := scorers.Context{RoleByID: map[uuid.UUID]domain.Role{
		preferredRole: {ID: preferredRole},
		otherRole:     {ID: otherRole},
	}}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: preferredRole, StartMin: 480, EndMin: 540},
		{CrewID: crewID, RoleID: otherRole, StartMin: 540, EndMin: 660},
	}
	res := scorers.Favorite(pref, cp, assignments, ctx)
	assert.Equal(t, 0.0, res.Satisfaction)
}

func TestTimingNotApplicableWithoutBreak(t *testing.T) {
	crewID := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceTiming, BaseWeight: 1}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}
	ctx := scorers.Context{
		ShiftByID:        map[uuid.UUID]domain.Shift{crewID: {CrewID: crewID, StartMin: 480, EndMin: 720}},
		BreakWindowStart: 180,
		BreakWindowEnd:   270,
	}

	res := scorers.Timing(pref, cp, nil, ctx)
	assert.False(t, res.Applicable)
}

func TestTimingEarlyPreference(t *testing.T) {
	crewID := uuid.New()
	breakRole := uuid.New()
	early := -1
	pref := domain.RolePreference{PreferenceType: domain.PreferenceTiming, BaseWeight: 1}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1, IntValue: &early}
	ctx := scorers.Context{
		RoleByID:         map[uuid.UUID]domain.Role{breakRole: {ID: breakRole, IsBreakRole: true}},
		ShiftByID:        map[uuid.UUID]domain.Shift{crewID: {CrewID: crewID, StartMin: 480, EndMin: 900}},
		BreakWindowStart: 180,
		BreakWindowEnd:   270,
	}

	// break starts exactly at window start (offset 180) => delta=0 => s=1 for early
	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: breakRole, StartMin: 480 + 180, EndMin: 480 + 210},
	}
	res := scorers.Timing(pref, cp, assignments, ctx)
	assert.True(t, res.Applicable)
	assert.Equal(t, 1.0, res.Satisfaction)
}

func TestConsecutiveNoTransitions(t *testing.T) {
	crewID := uuid.New()
	roleID := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceConsecutive, BaseWeight: 1}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}
	ctx := scorers.Context{RoleByID: map[uuid.UUID]domain.Role{roleID: {ID: roleID}}}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: roleID, StartMin: 480, EndMin: 540},
		{CrewID: crewID, RoleID: roleID, StartMin: 540, EndMin: 600},
	}
	res := scorers.Consecutive(pref, cp, assignments, ctx)
	assert.Equal(t, 1.0, res.Satisfaction)
}

func TestConsecutiveWithTransitions(t *testing.T) {
	crewID := uuid.New()
	roleA := uuid.New()
	roleB := uuid.New()
	roleC := uuid.New()
	pref := domain.RolePreference{PreferenceType: domain.PreferenceConsecutive, BaseWeight: 1}
	cp := domain.CrewPreference{CrewID: crewID, CrewWeight: 1}
	ctx := scorers.Context{RoleByID: map[uuid.UUID]domain.Role{
		roleA: {ID: roleA}, roleB: {ID: roleB}, roleC: {ID: roleC},
	}}

	assignments := []domain.Assignment{
		{CrewID: crewID, RoleID: roleA, StartMin: 480, EndMin: 510},
		{CrewID: crewID, RoleID: roleB, StartMin: 510, EndMin: 540},
		{CrewID: crewID, RoleID: roleC, StartMin: 540, EndMin: 570},
	}
	// 3 assignments, Rmax=2, R=2 transitions => s = 1 - 2/2 = 0
	res := scorers.Consecutive(pref, cp, assignments, ctx)
	assert.Equal(t, 0.0, res.Satisfaction)
}

func TestSatisfactionsEmitsOneRowPerResultIncludingNonApplicable(t *testing.T) {
	logbookID := uuid.New()
	applicableCrew := uuid.New()
	nonApplicableCrew := uuid.New()
	results := []scorers.Result{
		{CrewID: applicableCrew, Satisfaction: 0.8, Met: true, WeightApplied: 2, Applicable: true},
		{CrewID: nonApplicableCrew, Satisfaction: 0, Met: false, Applicable: false, Reason: "no break assignment placed for this crew"},
	}

	rows := scorers.Satisfactions(logbookID, results)
	assert.Len(t, rows, 2)

	var nonApplicableRow *domain.PreferenceSatisfaction
	for i := range rows {
		if rows[i].CrewID == nonApplicableCrew {
			nonApplicableRow = &rows[i]
		}
	}
	require := assert.New(t)
	require.NotNil(nonApplicableRow)
	require.Equal(0.0, nonApplicableRow.Satisfaction)
	require.False(nonApplicableRow.Met)
	require.Equal("no break assignment placed for this crew", nonApplicableRow.Details)
}

func TestAggregateExcludesNonApplicable(t *testing.T) {
	results := []scorers.Result{
		{Satisfaction: 1, Met: true, WeightApplied: 2, Applicable: true},
		{Satisfaction: 0, Met: false, Applicable: false},
		{Satisfaction: 0.4, Met: false, WeightApplied: 1, Applicable: true},
	}
	meta := scorers.Aggregate(results)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 1, meta.Met)
	assert.InDelta(t, 0.7, meta.AverageSatisfaction, 0.0001)
	assert.Equal(t, 3.0, meta.TotalWeightApplied)
}
