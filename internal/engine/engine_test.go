package engine_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/logbook-engine/internal/apperrors"
	"github.com/pageza/logbook-engine/internal/config"
	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/engine"
	"github.com/pageza/logbook-engine/internal/repository"
	"github.com/pageza/logbook-engine/internal/scorers"
	"github.com/pageza/logbook-engine/internal/solver"
)

type fakeReader struct {
	snap repository.InputSnapshot
	err  error
}

func (f fakeReader) LoadInputs(_ context.Context, _ uuid.UUID, _ string) (repository.InputSnapshot, error) {
	return f.snap, f.err
}

type fakePersister struct {
	ctx    scorers.Context
	result solver.Result
	id     uuid.UUID
}

func (f *fakePersister) SetScorerContext(ctx scorers.Context) { f.ctx = ctx }

func (f *fakePersister) Run(_ context.Context, _ uuid.UUID, _ string, result solver.Result, _ []domain.RolePreference, _ []domain.CrewPreference) (uuid.UUID, error) {
	f.result = result
	f.id = uuid.New()
	return f.id, nil
}

type fakeLocker struct {
	unlocked bool
}

func (f *fakeLocker) LockRun(_ context.Context, _ uuid.UUID, _ string) (func(context.Context) error, error) {
	return func(context.Context) error {
		f.unlocked = true
		return nil
	}, nil
}

func TestEngineRunReadsInvokesAndPersists(t *testing.T) {
	storeID := uuid.New()
	roleID := uuid.New()
	crewID := uuid.New()

	store := domain.Store{ID: storeID, RegHoursStart: 480, RegHoursEnd: 1200, BaseSlotMinutes: 30}
	snap := repository.InputSnapshot{
		Store: store,
		Crews: []domain.Crew{{ID: crewID, StoreID: storeID}},
		Shifts: []domain.Shift{{CrewID: crewID, Date: "2026-08-03", StartMin: 540, EndMin: 600}},
		Roles: []domain.Role{{
			ID: roleID, Code: "REGISTER", AssignmentModel: domain.AssignmentHourly,
			SlotsMustBeConsecutive: true, MinSlots: 1, MaxSlots: 2, BlockSize: 1,
		}},
		CrewRoles: []domain.CrewRole{{CrewID: crewID, RoleID: roleID}},
		Hourly:    []domain.HourlyRoleConstraint{{Date: "2026-08-03", Hour: 9, RoleID: roleID, RequiredPerHour: 1}},
	}

	reader := fakeReader{snap: snap}
	persister := &fakePersister{}
	locker := &fakeLocker{}
	cfg := &config.Config{DefaultTimeLimitSeconds: 5, DefaultSeed: 1}

	eng := engine.New(reader, persister, locker, nil, cfg, nil)

	logbookID, err := eng.Run(context.Background(), storeID, "2026-08-03")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, logbookID)
	assert.True(t, locker.unlocked)
	assert.NotNil(t, persister.ctx.RoleByID)
	assert.Contains(t, persister.ctx.RoleByID, roleID)
}

func TestEngineRunPropagatesReaderError(t *testing.T) {
	reader := fakeReader{err: assertError("boom")}
	persister := &fakePersister{}
	locker := &fakeLocker{}
	cfg := &config.Config{DefaultTimeLimitSeconds: 5, DefaultSeed: 1}

	eng := engine.New(reader, persister, locker, nil, cfg, nil)

	_, err := eng.Run(context.Background(), uuid.New(), "2026-08-03")
	assert.Error(t, err)
	assert.True(t, locker.unlocked)
}

func TestEngineRunRejectsDanglingReferencesBeforeInvokingSolver(t *testing.T) {
	storeID := uuid.New()
	snap := repository.InputSnapshot{
		Store:  domain.Store{ID: storeID, RegHoursStart: 480, RegHoursEnd: 1200, BaseSlotMinutes: 30},
		Shifts: []domain.Shift{{CrewID: uuid.New(), Date: "2026-08-03", StartMin: 480, EndMin: 600}},
	}

	reader := fakeReader{snap: snap}
	persister := &fakePersister{}
	locker := &fakeLocker{}
	cfg := &config.Config{DefaultTimeLimitSeconds: 5, DefaultSeed: 1}

	eng := engine.New(reader, persister, locker, nil, cfg, nil)

	_, err := eng.Run(context.Background(), storeID, "2026-08-03")
	require.Error(t, err)
	var inputErr *apperrors.InputValidationError
	assert.ErrorAs(t, err, &inputErr)
	assert.Equal(t, uuid.Nil, persister.id, "persister must not run when input validation fails")
}

func TestEngineRunRejectsConflictingFavoritePreferences(t *testing.T) {
	storeID := uuid.New()
	roleID := uuid.New()
	crewID := uuid.New()
	roleA, roleB := uuid.New(), uuid.New()
	prefA, prefB := uuid.New(), uuid.New()

	store := domain.Store{ID: storeID, RegHoursStart: 480, RegHoursEnd: 1200, BaseSlotMinutes: 30}
	snap := repository.InputSnapshot{
		Store: store,
		Crews: []domain.Crew{{ID: crewID, StoreID: storeID}},
		Shifts: []domain.Shift{{CrewID: crewID, Date: "2026-08-03", StartMin: 540, EndMin: 600}},
		Roles: []domain.Role{{
			ID: roleID, Code: "REGISTER", AssignmentModel: domain.AssignmentHourly,
			SlotsMustBeConsecutive: true, MinSlots: 1, MaxSlots: 2, BlockSize: 1,
		}},
		CrewRoles: []domain.CrewRole{{CrewID: crewID, RoleID: roleID}},
		RolePreferences: []domain.RolePreference{
			{ID: prefA, PreferenceType: domain.PreferenceFavorite, RoleID: &roleA},
			{ID: prefB, PreferenceType: domain.PreferenceFavorite, RoleID: &roleB},
		},
		CrewPreferences: []domain.CrewPreference{
			{CrewID: crewID, RolePreferenceID: prefA, Enabled: true},
			{CrewID: crewID, RolePreferenceID: prefB, Enabled: true},
		},
	}

	reader := fakeReader{snap: snap}
	persister := &fakePersister{}
	locker := &fakeLocker{}
	cfg := &config.Config{DefaultTimeLimitSeconds: 5, DefaultSeed: 1}

	eng := engine.New(reader, persister, locker, nil, cfg, nil)

	_, err := eng.Run(context.Background(), storeID, "2026-08-03")
	require.Error(t, err)
	var inputErr *apperrors.InputValidationError
	assert.ErrorAs(t, err, &inputErr)
	assert.Equal(t, uuid.Nil, persister.id, "persister must not run when preference configuration is invalid")
}

type assertError string

func (e assertError) Error() string { return string(e) }
