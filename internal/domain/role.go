package domain

import "github.com/google/uuid"

// Role carries both identity (Code) and the per-role knobs the validators of
// §4.4 dispatch on.
type Role struct {
	ID                     uuid.UUID       `json:"id" db:"id"`
	Code                   string          `json:"code" db:"code"`
	AssignmentModel        AssignmentModel `json:"assignment_model" db:"assignment_model"`
	SlotsMustBeConsecutive bool            `json:"slots_must_be_consecutive" db:"slots_must_be_consecutive"`
	MinSlots               int             `json:"min_slots" db:"min_slots"`
	MaxSlots               int             `json:"max_slots" db:"max_slots"`
	BlockSize              int             `json:"block_size" db:"block_size"`
	SlotSizeMode           SlotSizeMode    `json:"slot_size_mode" db:"slot_size_mode"`
	AllowOutsideStoreHours bool            `json:"allow_outside_store_hours" db:"allow_outside_store_hours"`
	IsBreakRole            bool            `json:"is_break_role" db:"is_break_role"`
	IsUniversalFallback    bool            `json:"is_universal_fallback" db:"is_universal_fallback"`
}

// Valid reports whether the role's own invariants hold (§3): 1 <= minSlots <=
// maxSlots, blockSize >= 1, minSlots a multiple of blockSize.
func (r Role) Valid() bool {
	if r.MinSlots < 1 || r.MinSlots > r.MaxSlots || r.BlockSize < 1 {
		return false
	}
	return r.MinSlots%r.BlockSize == 0
}
