package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/repository"
)

const rosterRunSchema = `
CREATE TABLE IF NOT EXISTS roster_runs (
	id                uuid PRIMARY KEY,
	simulation_run_id uuid NOT NULL REFERENCES simulation_runs(id),
	role_class        text NOT NULL,
	cycle_index       integer NOT NULL,
	feasible          boolean NOT NULL,
	total_cost        double precision NOT NULL,
	solver_status     text NOT NULL
)`

// RosterRunRepository implements repository.RosterRunRepository for PostgreSQL.
type RosterRunRepository struct {
	db *sql.DB
}

// NewRosterRunRepository creates a new RosterRunRepository and ensures its
// backing table exists.
func NewRosterRunRepository(db *sql.DB) (*RosterRunRepository, error) {
	if _, err := db.Exec(rosterRunSchema); err != nil {
		return nil, fmt.Errorf("failed to create roster_runs table: %w", err)
	}
	return &RosterRunRepository{db: db}, nil
}

// Create inserts a new roster run.
func (r *RosterRunRepository) Create(ctx context.Context, run *entity.RosterRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	query := `
		INSERT INTO roster_runs (
			id, simulation_run_id, role_class, cycle_index, feasible, total_cost, solver_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.SimulationRunID, run.RoleClass, run.CycleIndex,
		run.Feasible, run.TotalCost, run.SolverStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create roster run: %w", err)
	}
	return nil
}

// GetByID retrieves a roster run by ID.
func (r *RosterRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RosterRun, error) {
	run := &entity.RosterRun{}
	query := `
		SELECT id, simulation_run_id, role_class, cycle_index, feasible, total_cost, solver_status
		FROM roster_runs WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.SimulationRunID, &run.RoleClass, &run.CycleIndex,
		&run.Feasible, &run.TotalCost, &run.SolverStatus,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "RosterRun", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster run: %w", err)
	}
	return run, nil
}

// ListBySimulationRun returns every roster run belonging to one simulation run.
func (r *RosterRunRepository) ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.RosterRun, error) {
	return r.query(ctx, `
		SELECT id, simulation_run_id, role_class, cycle_index, feasible, total_cost, solver_status
		FROM roster_runs WHERE simulation_run_id = $1 ORDER BY cycle_index
	`, simulationRunID)
}

// ListByCycle returns every roster run belonging to one cycle of one
// simulation run, used to poll whether all four class solves have landed.
func (r *RosterRunRepository) ListByCycle(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int) ([]*entity.RosterRun, error) {
	return r.query(ctx, `
		SELECT id, simulation_run_id, role_class, cycle_index, feasible, total_cost, solver_status
		FROM roster_runs WHERE simulation_run_id = $1 AND cycle_index = $2
	`, simulationRunID, cycleIndex)
}

func (r *RosterRunRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.RosterRun, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.RosterRun
	for rows.Next() {
		run := &entity.RosterRun{}
		if err := rows.Scan(
			&run.ID, &run.SimulationRunID, &run.RoleClass, &run.CycleIndex,
			&run.Feasible, &run.TotalCost, &run.SolverStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the total number of stored roster runs.
func (r *RosterRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roster_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roster runs: %w", err)
	}
	return count, nil
}
