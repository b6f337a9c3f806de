package domain

import (
	"time"

	"github.com/google/uuid"
)

// Logbook is the per-(store,date) output of one run. Entities below it are
// produced in a single transactional step and never mutated afterwards.
type Logbook struct {
	ID          uuid.UUID              `json:"id" db:"id"`
	StoreID     uuid.UUID              `json:"store_id" db:"store_id"`
	Date        string                 `json:"date" db:"date"`
	Status      LogbookStatus          `json:"status" db:"status"`
	GeneratedAt time.Time              `json:"generated_at" db:"generated_at"`
	Metadata    map[string]interface{} `json:"metadata" db:"metadata"`
}

// PreferenceSatisfaction is one row per (logbook, enabled CrewPreference),
// computed by internal/scorers against the logbook's just-written
// assignments (§4.7 step 3).
type PreferenceSatisfaction struct {
	LogbookID        uuid.UUID `json:"logbook_id" db:"logbook_id"`
	CrewID           uuid.UUID `json:"crew_id" db:"crew_id"`
	RolePreferenceID uuid.UUID `json:"role_preference_id" db:"role_preference_id"`
	Satisfaction     float64   `json:"satisfaction" db:"satisfaction"`
	Met              bool      `json:"met" db:"met"`
	WeightApplied    float64   `json:"weight_applied" db:"weight_applied"`
	Details          string    `json:"details,omitempty" db:"details"`
}

// LogPreferenceMetadata is the single aggregate row summing the weight
// factors of every preference counted in a Logbook (§4.5 "Aggregate
// metrics").
type LogPreferenceMetadata struct {
	LogbookID           uuid.UUID `json:"logbook_id" db:"logbook_id"`
	Total               int       `json:"total" db:"total"`
	Met                 int       `json:"met" db:"met"`
	AverageSatisfaction float64   `json:"average_satisfaction" db:"average_satisfaction"`
	TotalWeightApplied  float64   `json:"total_weight_applied" db:"total_weight_applied"`
}
