package solver

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/validators"
)

// Driver orchestrates one run of §4.6: build the input document (done by the
// caller via BuildInput), invoke Backend, re-validate the output against
// every family of internal/validators, and sort the final assignment set.
type Driver struct {
	Backend Backend
	Logger  *log.Logger
}

// NewDriver constructs a Driver, defaulting Logger to log.Default() the way
// the rest of this module's services thread an injected *log.Logger.
func NewDriver(backend Backend, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{Backend: backend, Logger: logger}
}

// Result is everything the persister (§4.7) needs out of one run.
type Result struct {
	Output      OutputDocument
	Assignments []domain.Assignment
	Run         domain.Run

	// Violations is the full post-validation finding set (family-tagged),
	// populated when post-validation runs; the persister tallies it into the
	// Logbook metadata's "constraints" block (§4.7 step 1).
	Violations []validators.Violation
}

// Run invokes the backend under input.TimeLimitSeconds, re-validates its
// output, and downgrades status to ERROR if post-validation finds
// violations the backend missed (§4.6's "solver-agnostic safety net").
func (d *Driver) Run(ctx context.Context, storeID uuid.UUID, date string, input InputDocument, snap validators.Snapshot, engine string) Result {
	timeout := time.Duration(input.TimeLimitSeconds) * time.Second
	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	output, err := d.Backend.Invoke(runCtx, input)
	elapsed := time.Since(start)

	run := domain.Run{
		ID:      uuid.New(),
		StoreID: storeID,
		Date:    date,
		Engine:  engine,
		Seed:    input.Seed,
	}

	if err != nil {
		d.Logger.Printf("solver backend error: %v", err)
		run.Status = domain.RunError
		run.RuntimeMs = elapsed.Milliseconds()
		run.Violations = []string{fmt.Sprintf("solver invocation failed: %v", err)}
		return Result{Run: run}
	}

	if runCtx.Err() != nil && output.Metadata.Status != domain.RunTimeout {
		output.Metadata.Status = domain.RunTimeout
	}

	logbookID := uuid.New()
	assignments := output.ToAssignments(logbookID)
	sortDomainAssignments(assignments)

	run.Status = output.Metadata.Status
	run.RuntimeMs = output.Metadata.RuntimeMs
	run.ObjectiveScore = output.Metadata.ObjectiveScore
	run.MipGap = output.Metadata.MipGap
	run.Violations = append([]string(nil), output.Metadata.Violations...)

	switch output.Metadata.Status {
	case domain.RunOptimal, domain.RunFeasible:
		violations := validators.RunAll(assignments, snap)
		if len(violations) > 0 {
			d.Logger.Printf("post-validation found %d violation(s) the backend missed", len(violations))
			run.Status = domain.RunError
			for _, v := range violations {
				run.Violations = append(run.Violations, v.Message)
			}
			return Result{Output: output, Run: run, Violations: violations}
		}
		run.LogbookID = &logbookID
		return Result{Output: output, Assignments: assignments, Run: run}

	case domain.RunInfeasible:
		return Result{Output: output, Run: run}

	case domain.RunTimeout:
		return Result{Output: output, Run: run}

	default: // ERROR, or any unrecognized status
		run.Status = domain.RunError
		return Result{Output: output, Run: run}
	}
}

// sortDomainAssignments implements the §4.6 persistence order: (crewId,
// startMin, roleId).
func sortDomainAssignments(assignments []domain.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.CrewID != b.CrewID {
			return a.CrewID.String() < b.CrewID.String()
		}
		if a.StartMin != b.StartMin {
			return a.StartMin < b.StartMin
		}
		return a.RoleID.String() < b.RoleID.String()
	})
}
