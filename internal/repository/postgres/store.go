package postgres

import (
	"context"
	"fmt"

	"github.com/edrostering/edflow/internal/repository"
)

// Store bundles the three PostgreSQL-backed repositories behind
// repository.Database.
type Store struct {
	db                *DB
	simulationRuns    *SimulationRunRepository
	rosterRuns        *RosterRunRepository
	demandAdjustments *DemandAdjustmentRepository
}

// NewStore opens a PostgreSQL connection and creates all three repositories,
// running their embedded schema migrations.
func NewStore(connString string) (*Store, error) {
	db, err := New(connString)
	if err != nil {
		return nil, err
	}

	simulationRuns, err := NewSimulationRunRepository(db.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to build simulation run repository: %w", err)
	}
	rosterRuns, err := NewRosterRunRepository(db.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster run repository: %w", err)
	}
	demandAdjustments, err := NewDemandAdjustmentRepository(db.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to build demand adjustment repository: %w", err)
	}

	return &Store{
		db:                db,
		simulationRuns:    simulationRuns,
		rosterRuns:        rosterRuns,
		demandAdjustments: demandAdjustments,
	}, nil
}

func (s *Store) SimulationRunRepository() repository.SimulationRunRepository { return s.simulationRuns }
func (s *Store) RosterRunRepository() repository.RosterRunRepository        { return s.rosterRuns }
func (s *Store) DemandAdjustmentRepository() repository.DemandAdjustmentRepository {
	return s.demandAdjustments
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Health checks database connectivity.
func (s *Store) Health(ctx context.Context) error { return s.db.Health(ctx) }
