package domain

import "github.com/google/uuid"

// RolePreference is a store-level template weight for one PreferenceType,
// optionally bound to a role (e.g. BREAK TIMING has no RoleID).
type RolePreference struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	StoreID        uuid.UUID      `json:"store_id" db:"store_id"`
	RoleID         *uuid.UUID     `json:"role_id,omitempty" db:"role_id"`
	PreferenceType PreferenceType `json:"preference_type" db:"preference_type"`
	BaseWeight     float64        `json:"base_weight" db:"base_weight"`
}

// CrewPreference is one crew's opt-in to a RolePreference, carrying the
// effective per-crew weight and optional typed parameter (§4.5).
type CrewPreference struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CrewID           uuid.UUID `json:"crew_id" db:"crew_id"`
	RolePreferenceID uuid.UUID `json:"role_preference_id" db:"role_preference_id"`
	Enabled          bool      `json:"enabled" db:"enabled"`
	CrewWeight       float64   `json:"crew_weight" db:"crew_weight"`
	IntValue         *int      `json:"int_value,omitempty" db:"int_value"`

	// AdaptiveBoost is supplied by an external banking/fairness computation
	// (§9 "Banking"); default 1.0, clamped to [0.25, 4] before use.
	AdaptiveBoost float64 `json:"adaptive_boost,omitempty" db:"-"`
}
