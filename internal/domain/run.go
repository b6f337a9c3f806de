package domain

import "github.com/google/uuid"

// Run is an immutable audit record of one engine invocation (§3, §7).
type Run struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	StoreID       uuid.UUID  `json:"store_id" db:"store_id"`
	Date          string     `json:"date" db:"date"`
	Engine        string     `json:"engine" db:"engine"`
	Seed          int64      `json:"seed" db:"seed"`
	Status        RunStatus  `json:"status" db:"status"`
	RuntimeMs     int64      `json:"runtime_ms" db:"runtime_ms"`
	ObjectiveScore float64   `json:"objective_score" db:"objective_score"`
	MipGap        *float64   `json:"mip_gap,omitempty" db:"mip_gap"`
	LogbookID     *uuid.UUID `json:"logbook_id,omitempty" db:"logbook_id"`
	Violations    []string   `json:"violations" db:"violations"`
}
