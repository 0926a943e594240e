package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/repository"
)

// simulationRunSchema is applied by NewSimulationRunRepository.
const simulationRunSchema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	id                uuid PRIMARY KEY,
	started_at        timestamptz NOT NULL,
	finished_at       timestamptz,
	config_hash       text NOT NULL,
	cycle_count       integer NOT NULL,
	patients_treated  bigint NOT NULL,
	patients_rejected bigint NOT NULL,
	avg_wait_minutes  double precision NOT NULL
)`

// SimulationRunRepository implements repository.SimulationRunRepository for PostgreSQL.
type SimulationRunRepository struct {
	db *sql.DB
}

// NewSimulationRunRepository creates a new SimulationRunRepository and
// ensures its backing table exists.
func NewSimulationRunRepository(db *sql.DB) (*SimulationRunRepository, error) {
	if _, err := db.Exec(simulationRunSchema); err != nil {
		return nil, fmt.Errorf("failed to create simulation_runs table: %w", err)
	}
	return &SimulationRunRepository{db: db}, nil
}

// Create inserts a new simulation run.
func (r *SimulationRunRepository) Create(ctx context.Context, run *entity.SimulationRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	query := `
		INSERT INTO simulation_runs (
			id, started_at, finished_at, config_hash, cycle_count,
			patients_treated, patients_rejected, avg_wait_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.StartedAt, run.FinishedAt, run.ConfigHash, run.CycleCount,
		run.PatientsTreated, run.PatientsRejected, run.AvgWaitMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to create simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a simulation run by ID.
func (r *SimulationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SimulationRun, error) {
	run := &entity.SimulationRun{}
	query := `
		SELECT id, started_at, finished_at, config_hash, cycle_count,
		       patients_treated, patients_rejected, avg_wait_minutes
		FROM simulation_runs WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.ConfigHash, &run.CycleCount,
		&run.PatientsTreated, &run.PatientsRejected, &run.AvgWaitMinutes,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}
	return run, nil
}

// Update overwrites an existing simulation run's mutable fields.
func (r *SimulationRunRepository) Update(ctx context.Context, run *entity.SimulationRun) error {
	query := `
		UPDATE simulation_runs SET
			finished_at = $2, cycle_count = $3, patients_treated = $4,
			patients_rejected = $5, avg_wait_minutes = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		run.ID, run.FinishedAt, run.CycleCount, run.PatientsTreated,
		run.PatientsRejected, run.AvgWaitMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update simulation run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: run.ID.String()}
	}
	return nil
}

// List returns every stored simulation run, most recent first.
func (r *SimulationRunRepository) List(ctx context.Context) ([]*entity.SimulationRun, error) {
	query := `
		SELECT id, started_at, finished_at, config_hash, cycle_count,
		       patients_treated, patients_rejected, avg_wait_minutes
		FROM simulation_runs ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.SimulationRun
	for rows.Next() {
		run := &entity.SimulationRun{}
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt, &run.ConfigHash, &run.CycleCount,
			&run.PatientsTreated, &run.PatientsRejected, &run.AvgWaitMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the total number of stored simulation runs.
func (r *SimulationRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM simulation_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count simulation runs: %w", err)
	}
	return count, nil
}
