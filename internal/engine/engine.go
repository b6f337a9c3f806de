// Package engine wires the pieces named in §6's collaborator interfaces
// into one run: read inputs, invoke the solver driver, persist the output,
// in the ordering guarantee of §5.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/apperrors"
	"github.com/pageza/logbook-engine/internal/config"
	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/repository"
	"github.com/pageza/logbook-engine/internal/scorers"
	"github.com/pageza/logbook-engine/internal/solver"
	"github.com/pageza/logbook-engine/internal/validators"
)

// BoostLookup supplies the externally computed adaptive-boost factor for one
// (crew, rolePreference) pair (§9 "Banking"); pkg/database.AdaptiveBoostCache
// implements this against Redis.
type BoostLookup interface {
	Get(ctx context.Context, crewID, rolePreferenceID uuid.UUID) (float64, bool, error)
}

// Locker serializes runs for a (storeId, date) pair (§5).
type Locker interface {
	LockRun(ctx context.Context, storeID uuid.UUID, date string) (unlock func(context.Context) error, err error)
}

// Persister is what internal/persister.Persister implements: score
// preferences against a driver result and write the §4.7 bundle.
type Persister interface {
	SetScorerContext(ctx scorers.Context)
	Run(ctx context.Context, storeID uuid.UUID, date string, result solver.Result, rolePreferences []domain.RolePreference, crewPreferences []domain.CrewPreference) (uuid.UUID, error)
}

// Engine runs one (storeId, date) logbook generation end to end.
type Engine struct {
	Reader    repository.Reader
	Persister Persister
	Backend   solver.Backend
	Locker    Locker
	Boosts    BoostLookup
	Cfg       *config.Config
	Logger    *log.Logger
}

// New constructs an Engine, defaulting Backend to the greedy solver and
// Logger to log.Default() the way this module's other services default
// their collaborators.
func New(reader repository.Reader, persister Persister, locker Locker, boosts BoostLookup, cfg *config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Reader:    reader,
		Persister: persister,
		Backend:   solver.GreedyBackend{},
		Locker:    locker,
		Boosts:    boosts,
		Cfg:       cfg,
		Logger:    logger,
	}
}

// Run executes the §5 ordering guarantee for one (storeId, date) pair:
// acquire the run lock, read inputs, invoke the driver, persist the output,
// release the lock.
func (e *Engine) Run(ctx context.Context, storeID uuid.UUID, date string) (uuid.UUID, error) {
	unlock, err := e.Locker.LockRun(ctx, storeID, date)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	defer func() {
		if unlockErr := unlock(context.Background()); unlockErr != nil {
			e.Logger.Printf("failed to release run lock for store %s date %s: %v", storeID, date, unlockErr)
		}
	}()

	snap, err := e.Reader.LoadInputs(ctx, storeID, date)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load inputs: %w", err)
	}

	valSnap := validators.Snapshot{
		Store: snap.Store, Crews: snap.Crews, Shifts: snap.Shifts, Roles: snap.Roles,
		CrewRoles: snap.CrewRoles, Hourly: snap.Hourly, Window: snap.Window, Daily: snap.Daily,
	}

	problems := validators.ValidateReferences(valSnap)
	problems = append(problems, validators.ValidatePreferenceConfiguration(snap.RolePreferences, snap.CrewPreferences)...)
	if len(problems) > 0 {
		return uuid.Nil, &apperrors.InputValidationError{Problems: problems}
	}

	preferences := e.effectivePreferences(ctx, snap)

	timeLimit := e.Cfg.DefaultTimeLimitSeconds
	seed := e.Cfg.DefaultSeed
	input := solver.BuildInput(
		date, snap.Store, snap.Crews, snap.Shifts, snap.Roles, snap.CrewRoles,
		snap.Hourly, snap.Window, snap.Daily, preferences, timeLimit, seed,
	)

	driver := solver.NewDriver(e.Backend, e.Logger)
	result := driver.Run(ctx, storeID, date, input, valSnap, e.engineName())

	e.Persister.SetScorerContext(scorerContext(snap))
	logbookID, err := e.Persister.Run(ctx, storeID, date, result, snap.RolePreferences, snap.CrewPreferences)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist run: %w", err)
	}

	return logbookID, nil
}

// effectivePreferences builds the §6 solver input preference list, applying
// the cached adaptive-boost factor (§9 "Banking") to each enabled
// CrewPreference before it enters the weighted objective.
func (e *Engine) effectivePreferences(ctx context.Context, snap repository.InputSnapshot) []solver.InputPreference {
	rolePrefByID := make(map[uuid.UUID]domain.RolePreference, len(snap.RolePreferences))
	for _, rp := range snap.RolePreferences {
		rolePrefByID[rp.ID] = rp
	}

	out := make([]solver.InputPreference, 0, len(snap.CrewPreferences))
	for _, cp := range snap.CrewPreferences {
		if !cp.Enabled {
			continue
		}
		rp, ok := rolePrefByID[cp.RolePreferenceID]
		if !ok {
			continue
		}

		crewWeight := cp.CrewWeight
		if e.Boosts != nil {
			if boost, found, err := e.Boosts.Get(ctx, cp.CrewID, cp.RolePreferenceID); err == nil && found {
				crewWeight *= scorers.ClampAdaptiveBoost(boost)
			}
		}

		out = append(out, solver.InputPreference{
			ID:         rp.ID,
			CrewID:     cp.CrewID,
			Type:       rp.PreferenceType,
			RoleID:     rp.RoleID,
			BaseWeight: rp.BaseWeight,
			CrewWeight: crewWeight,
			IntValue:   cp.IntValue,
		})
	}
	return out
}

// scorerContext builds the internal/scorers.Context a persister needs to
// score preferences against just-written assignments.
func scorerContext(snap repository.InputSnapshot) scorers.Context {
	roleByID := make(map[uuid.UUID]domain.Role, len(snap.Roles))
	for _, r := range snap.Roles {
		roleByID[r.ID] = r
	}
	shiftByID := make(map[uuid.UUID]domain.Shift, len(snap.Shifts))
	for _, s := range snap.Shifts {
		shiftByID[s.CrewID] = s
	}
	return scorers.Context{
		RoleByID:         roleByID,
		ShiftByID:        shiftByID,
		BreakWindowStart: snap.Store.BreakPolicy.BreakWindowStart,
		BreakWindowEnd:   snap.Store.BreakPolicy.BreakWindowEnd,
	}
}

func (e *Engine) engineName() string {
	if e.Backend == nil {
		return "unknown"
	}
	switch e.Backend.(type) {
	case solver.GreedyBackend:
		return "greedy"
	default:
		return fmt.Sprintf("%T", e.Backend)
	}
}
