// Package persister implements the §4.7 logbook persister: given a solver
// run's output, it scores preferences against the just-produced assignments
// and writes the whole transactional bundle through a repository.Writer.
package persister

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/apperrors"
	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/repository"
	"github.com/pageza/logbook-engine/internal/scorers"
	"github.com/pageza/logbook-engine/internal/solver"
	"github.com/pageza/logbook-engine/internal/validators"
)

// Persister writes one run's Logbook/Assignment/PreferenceSatisfaction/
// LogPreferenceMetadata/Run bundle.
type Persister struct {
	Writer repository.Writer
	Clock  repository.Clock
	Logger *log.Logger

	ctx *scorers.Context
}

// New constructs a Persister, defaulting Clock and Logger the way the rest
// of this module's services default their collaborators.
func New(writer repository.Writer, clock repository.Clock, logger *log.Logger) *Persister {
	if clock == nil {
		clock = repository.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{Writer: writer, Clock: clock, Logger: logger}
}

// Run is the §4.7 entry point. Scoring context (role metadata and shifts)
// comes from the snapshot installed with SetScorerContext;
// rolePreferences/crewPreferences are the enabled preference configuration
// for this (store, date).
func (p *Persister) Run(
	ctx context.Context,
	storeID uuid.UUID,
	date string,
	driverResult solver.Result,
	rolePreferences []domain.RolePreference,
	crewPreferences []domain.CrewPreference,
) (uuid.UUID, error) {
	logbookID := uuid.New()
	if driverResult.Run.LogbookID != nil {
		logbookID = *driverResult.Run.LogbookID
	}

	assignments := retagLogbookID(driverResult.Assignments, logbookID)
	succeeded := driverResult.Run.Status == domain.RunOptimal || driverResult.Run.Status == domain.RunFeasible

	var satisfactions []domain.PreferenceSatisfaction
	var meta domain.LogPreferenceMetadata
	if succeeded {
		satisfactions, meta = p.score(logbookID, assignments, rolePreferences, crewPreferences)
	} else {
		assignments = nil
	}

	bundle := repository.WriteBundle{
		Logbook: domain.Logbook{
			ID:          logbookID,
			StoreID:     storeID,
			Date:        date,
			Status:      domain.LogbookDraft,
			GeneratedAt: p.Clock.Now(),
			Metadata:    buildMetadata(driverResult, assignments, meta),
		},
		Assignments:   assignments,
		Satisfactions: satisfactions,
		Metadata:      meta,
		Run:           driverResult.Run,
	}
	bundle.Run.LogbookID = &logbookID

	if err := p.Writer.Persist(ctx, bundle); err != nil {
		p.Logger.Printf("failed to persist logbook %s: %v", logbookID, err)
		return uuid.Nil, &apperrors.PersistenceError{Cause: err}
	}

	return logbookID, nil
}

func retagLogbookID(assignments []domain.Assignment, logbookID uuid.UUID) []domain.Assignment {
	out := make([]domain.Assignment, len(assignments))
	for i, a := range assignments {
		a.LogbookID = logbookID
		out[i] = a
	}
	return out
}

func (p *Persister) score(
	logbookID uuid.UUID,
	assignments []domain.Assignment,
	rolePreferences []domain.RolePreference,
	crewPreferences []domain.CrewPreference,
) ([]domain.PreferenceSatisfaction, domain.LogPreferenceMetadata) {
	prefByID := make(map[uuid.UUID]domain.RolePreference, len(rolePreferences))
	for _, rp := range rolePreferences {
		prefByID[rp.ID] = rp
	}

	assignmentsByCrew := make(map[uuid.UUID][]domain.Assignment)
	for _, a := range assignments {
		assignmentsByCrew[a.CrewID] = append(assignmentsByCrew[a.CrewID], a)
	}

	results := make([]scorers.Result, 0, len(crewPreferences))
	for _, cp := range crewPreferences {
		if !cp.Enabled {
			continue
		}
		pref, ok := prefByID[cp.RolePreferenceID]
		if !ok {
			continue
		}
		results = append(results, scorers.Score(pref, cp, assignmentsByCrew[cp.CrewID], p.scorerContext()))
	}

	return scorers.Satisfactions(logbookID, results), scorers.Aggregate(results)
}

// scorerContext is overridden per run by SetScorerContext; it defaults to an
// empty Context so a Persister used only for non-success statuses never
// needs one.
func (p *Persister) scorerContext() scorers.Context {
	if p.ctx != nil {
		return *p.ctx
	}
	return scorers.Context{}
}

// SetScorerContext supplies the role/shift/break-window lookups the
// preference scorers need (§4.5); call it once per run before Run.
func (p *Persister) SetScorerContext(ctx scorers.Context) {
	p.ctx = &ctx
}

func buildMetadata(result solver.Result, assignments []domain.Assignment, meta domain.LogPreferenceMetadata) map[string]interface{} {
	distinctCrew := make(map[uuid.UUID]struct{})
	totalMinutes := 0
	for _, a := range assignments {
		distinctCrew[a.CrewID] = struct{}{}
		totalMinutes += a.Minutes()
	}

	return map[string]interface{}{
		"solver": map[string]interface{}{
			"status":         result.Run.Status,
			"runtimeMs":      result.Run.RuntimeMs,
			"objectiveScore": result.Run.ObjectiveScore,
			"mipGap":         result.Run.MipGap,
		},
		"schedule": map[string]interface{}{
			"totalAssignments": len(assignments),
			"distinctCrew":     len(distinctCrew),
			"totalMinutes":     totalMinutes,
		},
		"preferences": map[string]interface{}{
			"total":               meta.Total,
			"met":                 meta.Met,
			"averageSatisfaction": meta.AverageSatisfaction,
		},
		"constraints": constraintCounts(result.Violations),
	}
}

// constraintCounts tallies a run's post-validation findings by §4.4 family
// (§4.7 step 1's "constraint counts by family"); a clean run yields an empty
// map.
func constraintCounts(violations []validators.Violation) map[string]int {
	counts := make(map[string]int, len(violations))
	for _, v := range violations {
		counts[string(v.Family)]++
	}
	return counts
}
