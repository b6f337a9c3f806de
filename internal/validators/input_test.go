package validators_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/validators"
)

func TestValidateReferencesCleanSnapshotHasNoProblems(t *testing.T) {
	crewID := uuid.New()
	roleID := uuid.New()
	snap := validators.Snapshot{
		Crews: []domain.Crew{{ID: crewID}},
		Roles: []domain.Role{{ID: roleID, MinSlots: 1, MaxSlots: 2, BlockSize: 1}},
		Shifts: []domain.Shift{{CrewID: crewID, StartMin: 480, EndMin: 600}},
		CrewRoles: []domain.CrewRole{{CrewID: crewID, RoleID: roleID}},
		Daily: []domain.DailyRoleConstraint{{CrewID: crewID, RoleID: roleID, RequiredHours: 2}},
	}

	assert.Empty(t, validators.ValidateReferences(snap))
}

func TestValidateReferencesDetectsUnknownCrew(t *testing.T) {
	roleID := uuid.New()
	snap := validators.Snapshot{
		Roles:     []domain.Role{{ID: roleID, MinSlots: 1, MaxSlots: 1, BlockSize: 1}},
		Shifts:    []domain.Shift{{CrewID: uuid.New(), StartMin: 480, EndMin: 600}},
	}

	problems := validators.ValidateReferences(snap)
	require := assert.New(t)
	require.NotEmpty(problems)
	require.Contains(problems[0], "unknown crew")
}

func TestValidateReferencesDetectsInvalidRoleSlots(t *testing.T) {
	role := domain.Role{ID: uuid.New(), MinSlots: 3, MaxSlots: 2, BlockSize: 1}
	snap := validators.Snapshot{Roles: []domain.Role{role}}

	problems := validators.ValidateReferences(snap)
	assert.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "invalid slot bounds")
}

func TestValidateReferencesDetectsUnknownRoleInDailyConstraint(t *testing.T) {
	crewID := uuid.New()
	snap := validators.Snapshot{
		Crews: []domain.Crew{{ID: crewID}},
		Daily: []domain.DailyRoleConstraint{{CrewID: crewID, RoleID: uuid.New(), RequiredHours: 1}},
	}

	problems := validators.ValidateReferences(snap)
	assert.NotEmpty(t, problems)
}

func TestValidatePreferenceConfigurationRejectsMultipleFavoriteRolesForSameCrew(t *testing.T) {
	crewID := uuid.New()
	roleA, roleB := uuid.New(), uuid.New()
	prefA := uuid.New()
	prefB := uuid.New()

	rolePreferences := []domain.RolePreference{
		{ID: prefA, PreferenceType: domain.PreferenceFavorite, RoleID: &roleA},
		{ID: prefB, PreferenceType: domain.PreferenceFavorite, RoleID: &roleB},
	}
	crewPreferences := []domain.CrewPreference{
		{CrewID: crewID, RolePreferenceID: prefA, Enabled: true},
		{CrewID: crewID, RolePreferenceID: prefB, Enabled: true},
	}

	problems := validators.ValidatePreferenceConfiguration(rolePreferences, crewPreferences)
	assert.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "FAVORITE")
}

func TestValidatePreferenceConfigurationAllowsSingleFavoriteRole(t *testing.T) {
	crewID := uuid.New()
	roleA := uuid.New()
	prefA := uuid.New()

	rolePreferences := []domain.RolePreference{
		{ID: prefA, PreferenceType: domain.PreferenceFavorite, RoleID: &roleA},
	}
	crewPreferences := []domain.CrewPreference{
		{CrewID: crewID, RolePreferenceID: prefA, Enabled: true},
	}

	assert.Empty(t, validators.ValidatePreferenceConfiguration(rolePreferences, crewPreferences))
}

func TestValidatePreferenceConfigurationIgnoresDisabledPreferences(t *testing.T) {
	crewID := uuid.New()
	roleA, roleB := uuid.New(), uuid.New()
	prefA, prefB := uuid.New(), uuid.New()

	rolePreferences := []domain.RolePreference{
		{ID: prefA, PreferenceType: domain.PreferenceFavorite, RoleID: &roleA},
		{ID: prefB, PreferenceType: domain.PreferenceFavorite, RoleID: &roleB},
	}
	crewPreferences := []domain.CrewPreference{
		{CrewID: crewID, RolePreferenceID: prefA, Enabled: true},
		{CrewID: crewID, RolePreferenceID: prefB, Enabled: false},
	}

	assert.Empty(t, validators.ValidatePreferenceConfiguration(rolePreferences, crewPreferences))
}
