package domain

import "github.com/google/uuid"

// BreakPolicy governs when a crew must take a break (§4.4.8).
type BreakPolicy struct {
	ReqShiftLengthForBreak int `json:"req_shift_length_for_break" db:"req_shift_length_for_break"`
	BreakWindowStart       int `json:"break_window_start" db:"break_window_start"`
	BreakWindowEnd         int `json:"break_window_end" db:"break_window_end"`
}

// Store is the single (store, date) scope a run operates over.
type Store struct {
	ID                    uuid.UUID              `json:"id" db:"id"`
	RegHoursStart         int                    `json:"reg_hours_start" db:"reg_hours_start"`
	RegHoursEnd           int                    `json:"reg_hours_end" db:"reg_hours_end"`
	BaseSlotMinutes       int                    `json:"base_slot_minutes" db:"base_slot_minutes"`
	BreakPolicy           BreakPolicy            `json:"break_policy" db:"-"`
	DefaultPreferenceWeights map[string]float64  `json:"default_preference_weights" db:"default_preference_weights"`
}
