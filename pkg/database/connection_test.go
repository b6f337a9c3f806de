package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/logbook-engine/pkg/database"
)

func TestRunLockKeyDeterministic(t *testing.T) {
	storeID := uuid.New()
	k1 := database.RunLockKey(storeID, "2026-08-03")
	k2 := database.RunLockKey(storeID, "2026-08-03")
	k3 := database.RunLockKey(storeID, "2026-08-04")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestLockRunAcquiresAndReleases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	storeID := uuid.New()
	key := database.RunLockKey(storeID, "2026-08-03")

	mock.ExpectExec("SELECT pg_advisory_lock\\(\\$1\\)").
		WithArgs(key).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_unlock\\(\\$1\\)").
		WithArgs(key).
		WillReturnResult(sqlmock.NewResult(0, 0))

	conn := &database.Connection{DB: db}
	unlock, err := conn.LockRun(context.Background(), storeID, "2026-08-03")
	require.NoError(t, err)
	require.NoError(t, unlock(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
