package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/repository"
	"github.com/pageza/logbook-engine/internal/repository/postgres"
)

func TestPersistWritesFullBundleInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	logbookID := uuid.New()
	storeID := uuid.New()
	crewID := uuid.New()
	roleID := uuid.New()
	rolePrefID := uuid.New()
	runID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO logbooks").
		WithArgs(logbookID, storeID, "2026-08-03", domain.LogbookDraft, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(logbookID, crewID, roleID, 540, 600).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO preference_satisfactions").
		WithArgs(logbookID, crewID, rolePrefID, 1.0, true, 10.0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO log_preference_metadata").
		WithArgs(logbookID, 1, 1, 1.0, 10.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO runs").
		WithArgs(runID, storeID, "2026-08-03", "greedy", int64(1), domain.RunOptimal, int64(5), 10.0, nil, &logbookID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := postgres.New(db)
	bundle := repository.WriteBundle{
		Logbook: domain.Logbook{
			ID: logbookID, StoreID: storeID, Date: "2026-08-03",
			Status: domain.LogbookDraft, GeneratedAt: time.Now(),
		},
		Assignments: []domain.Assignment{
			{LogbookID: logbookID, CrewID: crewID, RoleID: roleID, StartMin: 540, EndMin: 600},
		},
		Satisfactions: []domain.PreferenceSatisfaction{
			{LogbookID: logbookID, CrewID: crewID, RolePreferenceID: rolePrefID, Satisfaction: 1.0, Met: true, WeightApplied: 10.0},
		},
		Metadata: domain.LogPreferenceMetadata{Total: 1, Met: 1, AverageSatisfaction: 1.0, TotalWeightApplied: 10.0},
		Run: domain.Run{
			ID: runID, StoreID: storeID, Date: "2026-08-03", Engine: "greedy", Seed: 1,
			Status: domain.RunOptimal, RuntimeMs: 5, ObjectiveScore: 10.0, LogbookID: &logbookID,
		},
	}

	err = repo.Persist(context.Background(), bundle)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO logbooks").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := postgres.New(db)
	err = repo.Persist(context.Background(), repository.WriteBundle{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
