// Package memory provides map-backed, mutex-guarded repository
// implementations, used by cmd/server when DATABASE_URL is unset and by the
// repository unit tests.
package memory

import (
	"context"

	"github.com/edrostering/edflow/internal/repository"
)

// Store bundles the three in-memory repositories behind repository.Database.
type Store struct {
	simulationRuns    *SimulationRunRepository
	rosterRuns        *RosterRunRepository
	demandAdjustments *DemandAdjustmentRepository
}

// NewStore creates a new, empty in-memory store.
func NewStore() *Store {
	return &Store{
		simulationRuns:    NewSimulationRunRepository(),
		rosterRuns:        NewRosterRunRepository(),
		demandAdjustments: NewDemandAdjustmentRepository(),
	}
}

func (s *Store) SimulationRunRepository() repository.SimulationRunRepository { return s.simulationRuns }
func (s *Store) RosterRunRepository() repository.RosterRunRepository        { return s.rosterRuns }
func (s *Store) DemandAdjustmentRepository() repository.DemandAdjustmentRepository {
	return s.demandAdjustments
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// Health always reports healthy for the in-memory store.
func (s *Store) Health(ctx context.Context) error { return nil }
