package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/pageza/logbook-engine/internal/repository"
)

// Persist implements repository.Writer: the whole §4.7 bundle is written in
// a single transaction and rolled back entirely on any failure (§7
// PersistenceError).
func (r *Repository) Persist(ctx context.Context, bundle repository.WriteBundle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin persist transaction: %w", err)
	}
	defer tx.Rollback()

	metadataJSON, err := json.Marshal(bundle.Logbook.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode logbook metadata: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO logbooks (id, store_id, date, status, generated_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		bundle.Logbook.ID, bundle.Logbook.StoreID, bundle.Logbook.Date,
		bundle.Logbook.Status, bundle.Logbook.GeneratedAt, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert logbook: %w", err)
	}

	for _, a := range bundle.Assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assignments (logbook_id, crew_id, role_id, start_min, end_min)
			VALUES ($1, $2, $3, $4, $5)`,
			a.LogbookID, a.CrewID, a.RoleID, a.StartMin, a.EndMin,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, s := range bundle.Satisfactions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO preference_satisfactions
				(logbook_id, crew_id, role_preference_id, satisfaction, met, weight_applied, details)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.LogbookID, s.CrewID, s.RolePreferenceID, s.Satisfaction, s.Met, s.WeightApplied, s.Details,
		)
		if err != nil {
			return fmt.Errorf("failed to insert preference satisfaction: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO log_preference_metadata (logbook_id, total, met, average_satisfaction, total_weight_applied)
		VALUES ($1, $2, $3, $4, $5)`,
		bundle.Logbook.ID, bundle.Metadata.Total, bundle.Metadata.Met,
		bundle.Metadata.AverageSatisfaction, bundle.Metadata.TotalWeightApplied,
	)
	if err != nil {
		return fmt.Errorf("failed to insert preference metadata: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, store_id, date, engine, seed, status, runtime_ms, objective_score, mip_gap, logbook_id, violations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		bundle.Run.ID, bundle.Run.StoreID, bundle.Run.Date, bundle.Run.Engine, bundle.Run.Seed,
		bundle.Run.Status, bundle.Run.RuntimeMs, bundle.Run.ObjectiveScore, bundle.Run.MipGap,
		bundle.Run.LogbookID, pq.Array(bundle.Run.Violations),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit persist transaction: %w", err)
	}
	return nil
}
