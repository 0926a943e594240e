package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
)

const demandAdjustmentSchema = `
CREATE TABLE IF NOT EXISTS demand_adjustments (
	simulation_run_id uuid NOT NULL REFERENCES simulation_runs(id),
	cycle_index       integer NOT NULL,
	rejection_rate    double precision NOT NULL,
	avg_wait_minutes  double precision NOT NULL,
	factor            double precision NOT NULL,
	recorded_at       timestamptz NOT NULL,
	PRIMARY KEY (simulation_run_id, cycle_index)
)`

// DemandAdjustmentRepository implements repository.DemandAdjustmentRepository
// for PostgreSQL.
type DemandAdjustmentRepository struct {
	db *sql.DB
}

// NewDemandAdjustmentRepository creates a new DemandAdjustmentRepository and
// ensures its backing table exists.
func NewDemandAdjustmentRepository(db *sql.DB) (*DemandAdjustmentRepository, error) {
	if _, err := db.Exec(demandAdjustmentSchema); err != nil {
		return nil, fmt.Errorf("failed to create demand_adjustments table: %w", err)
	}
	return &DemandAdjustmentRepository{db: db}, nil
}

// Create inserts a new demand adjustment audit entry.
func (r *DemandAdjustmentRepository) Create(ctx context.Context, adj *entity.DemandAdjustment) error {
	query := `
		INSERT INTO demand_adjustments (
			simulation_run_id, cycle_index, rejection_rate, avg_wait_minutes, factor, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		adj.SimulationRunID, adj.CycleIndex, adj.RejectionRate,
		adj.AvgWaitMinutes, adj.Factor, adj.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create demand adjustment: %w", err)
	}
	return nil
}

// ListBySimulationRun returns every adjustment recorded for one simulation
// run, in cycle order.
func (r *DemandAdjustmentRepository) ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.DemandAdjustment, error) {
	query := `
		SELECT simulation_run_id, cycle_index, rejection_rate, avg_wait_minutes, factor, recorded_at
		FROM demand_adjustments WHERE simulation_run_id = $1 ORDER BY cycle_index
	`
	rows, err := r.db.QueryContext(ctx, query, simulationRunID)
	if err != nil {
		return nil, fmt.Errorf("failed to query demand adjustments: %w", err)
	}
	defer rows.Close()

	var entries []*entity.DemandAdjustment
	for rows.Next() {
		adj := &entity.DemandAdjustment{}
		if err := rows.Scan(
			&adj.SimulationRunID, &adj.CycleIndex, &adj.RejectionRate,
			&adj.AvgWaitMinutes, &adj.Factor, &adj.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan demand adjustment: %w", err)
		}
		entries = append(entries, adj)
	}
	return entries, rows.Err()
}

// Count returns the total number of stored adjustment entries.
func (r *DemandAdjustmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM demand_adjustments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count demand adjustments: %w", err)
	}
	return count, nil
}
