package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
)

// DemandAdjustmentRepository is an in-memory implementation of
// repository.DemandAdjustmentRepository.
type DemandAdjustmentRepository struct {
	mu      sync.RWMutex
	entries []*entity.DemandAdjustment
}

// NewDemandAdjustmentRepository creates a new, empty in-memory repository.
func NewDemandAdjustmentRepository() *DemandAdjustmentRepository {
	return &DemandAdjustmentRepository{}
}

// Create appends a new demand adjustment audit entry.
func (r *DemandAdjustmentRepository) Create(ctx context.Context, adj *entity.DemandAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, adj)
	return nil
}

// ListBySimulationRun returns every adjustment recorded for one simulation
// run, in the order they were created.
func (r *DemandAdjustmentRepository) ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.DemandAdjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.DemandAdjustment
	for _, e := range r.entries {
		if e.SimulationRunID == simulationRunID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Count returns the total number of stored adjustment entries.
func (r *DemandAdjustmentRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}
