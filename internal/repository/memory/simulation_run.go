package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/repository"
)

// SimulationRunRepository is an in-memory implementation of
// repository.SimulationRunRepository.
type SimulationRunRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*entity.SimulationRun
}

// NewSimulationRunRepository creates a new, empty in-memory repository.
func NewSimulationRunRepository() *SimulationRunRepository {
	return &SimulationRunRepository{runs: make(map[uuid.UUID]*entity.SimulationRun)}
}

// Create stores a new simulation run record.
func (r *SimulationRunRepository) Create(ctx context.Context, run *entity.SimulationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run == nil {
		return &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: "nil"}
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a simulation run by ID.
func (r *SimulationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SimulationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: id.String()}
	}
	return run, nil
}

// Update overwrites an existing simulation run record.
func (r *SimulationRunRepository) Update(ctx context.Context, run *entity.SimulationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run == nil {
		return &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: "nil"}
	}
	if _, ok := r.runs[run.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "SimulationRun", ResourceID: run.ID.String()}
	}
	r.runs[run.ID] = run
	return nil
}

// List returns every stored simulation run, in no particular order.
func (r *SimulationRunRepository) List(ctx context.Context) ([]*entity.SimulationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.SimulationRun, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, nil
}

// Count returns the total number of stored simulation runs.
func (r *SimulationRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.runs)), nil
}
