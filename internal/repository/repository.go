// Package repository defines the collaborator contracts of §6: a
// persistence read API, a persistence write API, and a clock. The core
// engine depends only on these interfaces; internal/repository/postgres
// supplies the concrete implementation.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// InputSnapshot is everything the engine reads at the start of a run (§5
// "initial bulk read of inputs").
type InputSnapshot struct {
	Store           domain.Store
	Crews           []domain.Crew
	Shifts          []domain.Shift
	Roles           []domain.Role
	CrewRoles       []domain.CrewRole
	Hourly          []domain.HourlyRoleConstraint
	Window          []domain.WindowRoleConstraint
	Daily           []domain.DailyRoleConstraint
	RolePreferences []domain.RolePreference
	CrewPreferences []domain.CrewPreference
}

// Reader is the persistence read API of §6: it supplies the entities of §3
// for one (store, date) pair.
type Reader interface {
	LoadInputs(ctx context.Context, storeID uuid.UUID, date string) (InputSnapshot, error)
}

// WriteBundle is the transactional write of §4.7: a Logbook row, its
// Assignment rows, its PreferenceSatisfaction rows, its
// LogPreferenceMetadata row, and a Run row referencing the Logbook.
type WriteBundle struct {
	Logbook      domain.Logbook
	Assignments  []domain.Assignment
	Satisfactions []domain.PreferenceSatisfaction
	Metadata     domain.LogPreferenceMetadata
	Run          domain.Run
}

// Writer is the persistence write API of §6: it accepts the transactional
// bundle of §4.7 and writes it atomically, rolling back entirely on any
// failure (§7 PersistenceError).
type Writer interface {
	Persist(ctx context.Context, bundle WriteBundle) error
}

// Clock returns generatedAt for a Logbook (§6).
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock, backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
