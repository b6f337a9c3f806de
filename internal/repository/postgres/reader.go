// Package postgres implements internal/repository's Reader and Writer
// against PostgreSQL via database/sql and github.com/lib/pq, in the same
// raw-SQL, hand-scanned style as the rest of this module's repository layer.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pageza/logbook-engine/internal/domain"
	"github.com/pageza/logbook-engine/internal/repository"
)

// Repository implements repository.Reader and repository.Writer against a
// *sql.DB.
type Repository struct {
	db *sql.DB
}

// New wraps db.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// LoadInputs implements repository.Reader.
func (r *Repository) LoadInputs(ctx context.Context, storeID uuid.UUID, date string) (repository.InputSnapshot, error) {
	var snap repository.InputSnapshot

	store, err := r.loadStore(ctx, storeID)
	if err != nil {
		return snap, err
	}
	snap.Store = store

	if snap.Crews, err = r.loadCrews(ctx, storeID); err != nil {
		return snap, err
	}
	if snap.Shifts, err = r.loadShifts(ctx, storeID, date); err != nil {
		return snap, err
	}
	if snap.Roles, err = r.loadRoles(ctx, storeID); err != nil {
		return snap, err
	}
	if snap.CrewRoles, err = r.loadCrewRoles(ctx, storeID); err != nil {
		return snap, err
	}
	if snap.Hourly, err = r.loadHourly(ctx, storeID, date); err != nil {
		return snap, err
	}
	if snap.Window, err = r.loadWindow(ctx, storeID, date); err != nil {
		return snap, err
	}
	if snap.Daily, err = r.loadDaily(ctx, storeID, date); err != nil {
		return snap, err
	}
	if snap.RolePreferences, err = r.loadRolePreferences(ctx, storeID); err != nil {
		return snap, err
	}
	if snap.CrewPreferences, err = r.loadCrewPreferences(ctx, storeID); err != nil {
		return snap, err
	}

	return snap, nil
}

func (r *Repository) loadStore(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	query := `
		SELECT id, reg_hours_start, reg_hours_end, base_slot_minutes,
			req_shift_length_for_break, break_window_start, break_window_end,
			default_preference_weights
		FROM stores WHERE id = $1`

	var store domain.Store
	var weightsJSON []byte
	err := r.db.QueryRowContext(ctx, query, storeID).Scan(
		&store.ID, &store.RegHoursStart, &store.RegHoursEnd, &store.BaseSlotMinutes,
		&store.BreakPolicy.ReqShiftLengthForBreak, &store.BreakPolicy.BreakWindowStart, &store.BreakPolicy.BreakWindowEnd,
		&weightsJSON,
	)
	if err != nil {
		return store, fmt.Errorf("failed to load store %s: %w", storeID, err)
	}
	if len(weightsJSON) > 0 {
		if err := json.Unmarshal(weightsJSON, &store.DefaultPreferenceWeights); err != nil {
			return store, fmt.Errorf("failed to decode store preference weights: %w", err)
		}
	}
	return store, nil
}

func (r *Repository) loadCrews(ctx context.Context, storeID uuid.UUID) ([]domain.Crew, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, store_id, tags FROM crews WHERE store_id = $1`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crews: %w", err)
	}
	defer rows.Close()

	var out []domain.Crew
	for rows.Next() {
		var c domain.Crew
		var tags pq.StringArray
		if err := rows.Scan(&c.ID, &c.Name, &c.StoreID, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		c.Tags = []string(tags)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) loadShifts(ctx context.Context, storeID uuid.UUID, date string) ([]domain.Shift, error) {
	query := `
		SELECT s.crew_id, s.date, s.start_min, s.end_min
		FROM shifts s
		JOIN crews c ON c.id = s.crew_id
		WHERE c.store_id = $1 AND s.date = $2`

	rows, err := r.db.QueryContext(ctx, query, storeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	defer rows.Close()

	var out []domain.Shift
	for rows.Next() {
		var s domain.Shift
		if err := rows.Scan(&s.CrewID, &s.Date, &s.StartMin, &s.EndMin); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) loadRoles(ctx context.Context, storeID uuid.UUID) ([]domain.Role, error) {
	query := `
		SELECT id, code, assignment_model, slots_must_be_consecutive, min_slots, max_slots,
			block_size, slot_size_mode, allow_outside_store_hours, is_break_role, is_universal_fallback
		FROM roles WHERE store_id = $1`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	defer rows.Close()

	var out []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID, &role.Code, &role.AssignmentModel, &role.SlotsMustBeConsecutive,
			&role.MinSlots, &role.MaxSlots, &role.BlockSize, &role.SlotSizeMode,
			&role.AllowOutsideStoreHours, &role.IsBreakRole, &role.IsUniversalFallback,
		); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *Repository) loadCrewRoles(ctx context.Context, storeID uuid.UUID) ([]domain.CrewRole, error) {
	query := `
		SELECT cr.crew_id, cr.role_id, cr.specialization
		FROM crew_roles cr
		JOIN crews c ON c.id = cr.crew_id
		WHERE c.store_id = $1`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew roles: %w", err)
	}
	defer rows.Close()

	var out []domain.CrewRole
	for rows.Next() {
		var cr domain.CrewRole
		if err := rows.Scan(&cr.CrewID, &cr.RoleID, &cr.Specialization); err != nil {
			return nil, fmt.Errorf("failed to scan crew role: %w", err)
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *Repository) loadHourly(ctx context.Context, storeID uuid.UUID, date string) ([]domain.HourlyRoleConstraint, error) {
	query := `
		SELECT h.date, h.hour, h.role_id, h.required_per_hour
		FROM hourly_role_constraints h
		JOIN roles r ON r.id = h.role_id
		WHERE r.store_id = $1 AND h.date = $2`

	rows, err := r.db.QueryContext(ctx, query, storeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load hourly constraints: %w", err)
	}
	defer rows.Close()

	var out []domain.HourlyRoleConstraint
	for rows.Next() {
		var c domain.HourlyRoleConstraint
		if err := rows.Scan(&c.Date, &c.Hour, &c.RoleID, &c.RequiredPerHour); err != nil {
			return nil, fmt.Errorf("failed to scan hourly constraint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) loadWindow(ctx context.Context, storeID uuid.UUID, date string) ([]domain.WindowRoleConstraint, error) {
	query := `
		SELECT w.date, w.role_id, w.start_hour, w.end_hour, w.required_per_hour
		FROM window_role_constraints w
		JOIN roles r ON r.id = w.role_id
		WHERE r.store_id = $1 AND w.date = $2`

	rows, err := r.db.QueryContext(ctx, query, storeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load window constraints: %w", err)
	}
	defer rows.Close()

	var out []domain.WindowRoleConstraint
	for rows.Next() {
		var c domain.WindowRoleConstraint
		if err := rows.Scan(&c.Date, &c.RoleID, &c.StartHour, &c.EndHour, &c.RequiredPerHour); err != nil {
			return nil, fmt.Errorf("failed to scan window constraint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) loadDaily(ctx context.Context, storeID uuid.UUID, date string) ([]domain.DailyRoleConstraint, error) {
	query := `
		SELECT d.date, d.crew_id, d.role_id, d.required_hours
		FROM daily_role_constraints d
		JOIN roles r ON r.id = d.role_id
		WHERE r.store_id = $1 AND d.date = $2`

	rows, err := r.db.QueryContext(ctx, query, storeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily constraints: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyRoleConstraint
	for rows.Next() {
		var c domain.DailyRoleConstraint
		if err := rows.Scan(&c.Date, &c.CrewID, &c.RoleID, &c.RequiredHours); err != nil {
			return nil, fmt.Errorf("failed to scan daily constraint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) loadRolePreferences(ctx context.Context, storeID uuid.UUID) ([]domain.RolePreference, error) {
	query := `
		SELECT id, store_id, role_id, preference_type, base_weight
		FROM role_preferences WHERE store_id = $1`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role preferences: %w", err)
	}
	defer rows.Close()

	var out []domain.RolePreference
	for rows.Next() {
		var p domain.RolePreference
		if err := rows.Scan(&p.ID, &p.StoreID, &p.RoleID, &p.PreferenceType, &p.BaseWeight); err != nil {
			return nil, fmt.Errorf("failed to scan role preference: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) loadCrewPreferences(ctx context.Context, storeID uuid.UUID) ([]domain.CrewPreference, error) {
	query := `
		SELECT cp.id, cp.crew_id, cp.role_preference_id, cp.enabled, cp.crew_weight, cp.int_value
		FROM crew_preferences cp
		JOIN crews c ON c.id = cp.crew_id
		WHERE c.store_id = $1 AND cp.enabled = true`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew preferences: %w", err)
	}
	defer rows.Close()

	var out []domain.CrewPreference
	for rows.Next() {
		var p domain.CrewPreference
		if err := rows.Scan(&p.ID, &p.CrewID, &p.RolePreferenceID, &p.Enabled, &p.CrewWeight, &p.IntValue); err != nil {
			return nil, fmt.Errorf("failed to scan crew preference: %w", err)
		}
		p.AdaptiveBoost = 1.0
		out = append(out, p)
	}
	return out, rows.Err()
}
