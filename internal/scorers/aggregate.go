package scorers

import (
	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/domain"
)

// Aggregate folds a set of scorer Results into the logbook-level metrics of
// §4.5 "Aggregate metrics". Non-applicable results (TIMING with no break
// present) are excluded from both the count and the average.
func Aggregate(results []Result) domain.LogPreferenceMetadata {
	var meta domain.LogPreferenceMetadata
	var satisfactionSum float64

	for _, r := range results {
		if !r.Applicable {
			continue
		}
		meta.Total++
		if r.Met {
			meta.Met++
		}
		satisfactionSum += r.Satisfaction
		meta.TotalWeightApplied += r.WeightApplied
	}

	if meta.Total > 0 {
		meta.AverageSatisfaction = satisfactionSum / float64(meta.Total)
	}
	return meta
}

// Satisfactions converts scorer Results into PreferenceSatisfaction rows for
// persistence (§4.7 step 3), attaching the owning logbook id. Every enabled
// CrewPreference gets exactly one row (§3): a non-applicable result (e.g.
// TIMING with no break placed) is still written, with Satisfaction/Met
// zeroed and Details recording why it did not apply; Aggregate is what
// excludes non-applicable results from the logbook-level totals.
func Satisfactions(logbookID uuid.UUID, results []Result) []domain.PreferenceSatisfaction {
	out := make([]domain.PreferenceSatisfaction, 0, len(results))
	for _, r := range results {
		row := domain.PreferenceSatisfaction{
			LogbookID:        logbookID,
			CrewID:           r.CrewID,
			RolePreferenceID: r.RolePreferenceID,
			Satisfaction:     r.Satisfaction,
			Met:              r.Met,
			WeightApplied:    r.WeightApplied,
			Details:          r.Reason,
		}
		if !r.Applicable {
			row.Satisfaction = 0
			row.Met = false
		}
		out = append(out, row)
	}
	return out
}
