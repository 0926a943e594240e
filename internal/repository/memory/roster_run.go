package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/repository"
)

// RosterRunRepository is an in-memory implementation of
// repository.RosterRunRepository.
type RosterRunRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*entity.RosterRun
}

// NewRosterRunRepository creates a new, empty in-memory repository.
func NewRosterRunRepository() *RosterRunRepository {
	return &RosterRunRepository{runs: make(map[uuid.UUID]*entity.RosterRun)}
}

// Create stores a new roster run record.
func (r *RosterRunRepository) Create(ctx context.Context, run *entity.RosterRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run == nil {
		return &repository.NotFoundError{ResourceType: "RosterRun", ResourceID: "nil"}
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a roster run by ID.
func (r *RosterRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RosterRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "RosterRun", ResourceID: id.String()}
	}
	return run, nil
}

// ListBySimulationRun returns every roster run belonging to one simulation run.
func (r *RosterRunRepository) ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.RosterRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.RosterRun
	for _, run := range r.runs {
		if run.SimulationRunID == simulationRunID {
			out = append(out, run)
		}
	}
	return out, nil
}

// ListByCycle returns every roster run belonging to one cycle of one
// simulation run — used by the job orchestration component to poll whether
// all four per-class solves for a cycle have landed.
func (r *RosterRunRepository) ListByCycle(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int) ([]*entity.RosterRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.RosterRun
	for _, run := range r.runs {
		if run.SimulationRunID == simulationRunID && run.CycleIndex == cycleIndex {
			out = append(out, run)
		}
	}
	return out, nil
}

// Count returns the total number of stored roster runs.
func (r *RosterRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.runs)), nil
}
